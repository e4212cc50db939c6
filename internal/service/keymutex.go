package service

import "sync"

// keyedMutex holds one mutex per key so that work for distinct users never
// blocks, while two concurrent operations for the same user serialize.
type keyedMutex struct {
	locks sync.Map // key -> *sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{}
}

func (k *keyedMutex) Lock(key string) {
	m, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	m.(*sync.Mutex).Lock()
}

func (k *keyedMutex) Unlock(key string) {
	if m, ok := k.locks.Load(key); ok {
		m.(*sync.Mutex).Unlock()
	}
}
