// Package params holds the hot-reloadable control surface of the effect
// chain.
//
// A [Set] may be written from any goroutine at any time; every write is a
// single atomic store followed by raising the dirty flag. The real-time
// side calls [Set.TakeDirty] once per block and, when it reports true,
// pulls an immutable [Snapshot] and hands it to the effects. Writers never
// block and the audio path never takes a lock.
package params
