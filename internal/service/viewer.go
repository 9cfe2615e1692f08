package service

import "earthlink/internal/model"

// viewerOrAnonymous maps an optional viewing user onto the sentinel id the
// read-model queries expect, so viewer-relative flags are false for
// anonymous requests without branching the SQL.
func viewerOrAnonymous(viewerID *int64) int64 {
	if viewerID == nil {
		return model.AnonymousViewerID
	}
	return *viewerID
}
