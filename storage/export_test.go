package storage

import "sync"

// Seams for the external test package.

// VerifyConnection exposes verifyConnection.
var VerifyConnection = verifyConnection

// ResetShared rewinds the process-wide shared client state and restores
// the real connect function.
func ResetShared() {
	sharedMu.Lock()
	shared = nil
	sharedMu.Unlock()
	sharedOnce = sync.Once{}
	sharedDB = ""
	sharedErr = nil
	ConnectFunc = Connect
}
