// Package file reads configuration and parameter documents from disk.
//
// A Fetcher reads its file once, when it is built, and hands out copies of
// the cached bytes. Missing files keep fs.ErrNotExist in their error chain
// so callers can decide whether a missing parameter file is fatal:
//
//	fetcher, err := file.Open("robot.yaml")
//	if errors.Is(err, fs.ErrNotExist) {
//	    // skip it
//	}
package file
