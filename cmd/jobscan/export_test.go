package main

import "github.com/fwojciec/jobscan"

// WriteReport exposes writeReport to tests.
var WriteReport = writeReport

// NewSnapshotClassifier exposes snapshotClassifier to tests.
func NewSnapshotClassifier(deps *Dependencies, next jobscan.Classifier, store jobscan.SnapshotStore) jobscan.Classifier {
	return &snapshotClassifier{
		ctx:       deps.Ctx,
		next:      next,
		converter: deps.Converter,
		store:     store,
		logger:    deps.Logger,
	}
}
