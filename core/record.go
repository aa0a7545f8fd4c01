package core

import (
	"sync"
	"time"
)

// Record is a single accepted log event handed to a provider
type Record struct {
	Time    time.Time
	Logger  string
	Level   Level
	Payload any
}

var recordPool = sync.Pool{
	New: func() interface{} {
		return &Record{}
	},
}

// GetRecord retrieves a Record from the pool
func GetRecord() *Record {
	r := recordPool.Get().(*Record)
	r.Time = time.Now()
	return r
}

// PutRecord returns a Record to the pool. Providers must not retain the
// record after Write returns.
func PutRecord(r *Record) {
	if r == nil {
		return
	}
	r.Logger = ""
	r.Payload = nil
	r.Level = DebugLevel
	recordPool.Put(r)
}
