// Package linkage tracks which companion thread belongs to which voice
// channel. The registry is the single source of truth for that pairing;
// it holds no Discord state beyond the two channel IDs.
package linkage

import "sync"

// Registry is a bidirectional map between voice channel IDs and their
// companion thread IDs. One mutex spans both directions so an insert or
// remove is atomic across them. Lookups copy the value out under the lock;
// callers never hold the lock across a REST call.
type Registry struct {
	mu         sync.Mutex
	vcToThread map[string]string
	threadToVC map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		vcToThread: make(map[string]string),
		threadToVC: make(map[string]string),
	}
}

// ThreadFor returns the companion thread for a voice channel. A pending
// reservation (see Reserve) reads as absent.
func (r *Registry) ThreadFor(voiceID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	threadID, ok := r.vcToThread[voiceID]
	if !ok || threadID == "" {
		return "", false
	}
	return threadID, true
}

// VoiceFor returns the voice channel a thread is the companion of.
func (r *Registry) VoiceFor(threadID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	voiceID, ok := r.threadToVC[threadID]
	if !ok {
		return "", false
	}
	return voiceID, true
}

// Insert links both directions atomically. Last write wins for either key;
// callers are expected to insert only after confirming no entry exists.
func (r *Registry) Insert(voiceID, threadID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vcToThread[voiceID] = threadID
	r.threadToVC[threadID] = voiceID
}

// Remove drops both directions for the pair linked to voiceID. No-op if the
// voice channel has no linkage.
func (r *Registry) Remove(voiceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	threadID, ok := r.vcToThread[voiceID]
	if !ok {
		return
	}
	delete(r.vcToThread, voiceID)
	if threadID != "" {
		delete(r.threadToVC, threadID)
	}
}

// Reserve claims the thread-creation slot for a voice channel. Two join
// events for the same never-seen channel can race between lookup and
// creation; the reservation marker closes that window without holding the
// lock across the REST calls that follow.
//
// If a thread is already linked, Reserve returns its ID and false: the
// caller should treat the channel as linked. If another reservation is
// pending, it returns ("", false): the losing event is dropped. Otherwise
// the slot is claimed and ("", true) is returned; the caller finalizes with
// Insert or rolls back with Release.
func (r *Registry) Reserve(voiceID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if threadID, ok := r.vcToThread[voiceID]; ok {
		return threadID, false
	}
	r.vcToThread[voiceID] = ""
	return "", true
}

// Release abandons a reservation after a failed creation. It only clears a
// pending marker; a finalized linkage is left untouched.
func (r *Registry) Release(voiceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if threadID, ok := r.vcToThread[voiceID]; ok && threadID == "" {
		delete(r.vcToThread, voiceID)
	}
}
