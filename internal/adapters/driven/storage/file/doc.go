// Package file provides a driven.LocalStorage backed by a single JSON
// document on disk. The document is shared by every chainsearch process
// of the user: writes are serialised with a lock file and other
// processes observe changes through fsnotify.
package file
