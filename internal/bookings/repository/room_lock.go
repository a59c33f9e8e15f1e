package repository

import "sync"

// RoomLocker serializes mutating operations per room so the service's
// check-then-insert sequence is atomic for a given room. Reads do not take
// the room lock; the store's own RWMutex keeps them consistent.
type RoomLocker struct {
	mu    sync.Mutex
	rooms map[string]*roomLock
}

type roomLock struct {
	mu   sync.Mutex
	refs int
}

func NewRoomLocker() *RoomLocker {
	return &RoomLocker{rooms: make(map[string]*roomLock)}
}

func (l *RoomLocker) Lock(roomID string) {
	l.mu.Lock()
	lock, ok := l.rooms[roomID]
	if !ok {
		lock = &roomLock{}
		l.rooms[roomID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
}

func (l *RoomLocker) Unlock(roomID string) {
	l.mu.Lock()
	lock, ok := l.rooms[roomID]
	if !ok {
		l.mu.Unlock()
		panic("repository: unlock of unlocked room " + roomID)
	}
	lock.refs--
	if lock.refs == 0 {
		delete(l.rooms, roomID)
	}
	l.mu.Unlock()

	lock.mu.Unlock()
}
