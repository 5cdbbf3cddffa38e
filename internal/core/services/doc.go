// Package services implements the driving port interfaces.
//
// Services hold the workflow rules: which lifecycle transitions are legal,
// which side effects a document triggers, and who may touch a process.
// Every multi-write operation runs inside one driven.Transactor unit of work
// and emits its audit events only after that unit has committed.
package services
