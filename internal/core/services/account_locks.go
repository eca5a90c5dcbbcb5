package services

import (
	"hash/fnv"
	"sync"
)

const accountLockShards = 32

// AccountLockManager serializes account creation per (case file, account
// number) key. Keys are hashed onto a fixed set of shard mutexes so the
// manager never grows with the number of accounts seen.
type AccountLockManager struct {
	shards [accountLockShards]sync.Mutex
}

func NewAccountLockManager() *AccountLockManager {
	return &AccountLockManager{}
}

// Lock acquires the shard lock for the given key and returns the unlock
// function. Two different keys may share a shard; that only costs contention,
// never correctness.
func (m *AccountLockManager) Lock(caseFileID, accountNumber string) func() {
	shard := &m.shards[m.shardIndex(caseFileID, accountNumber)]
	shard.Lock()
	return shard.Unlock
}

func (m *AccountLockManager) shardIndex(caseFileID, accountNumber string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(caseFileID))
	h.Write([]byte{0})
	h.Write([]byte(accountNumber))
	return h.Sum32() % accountLockShards
}
