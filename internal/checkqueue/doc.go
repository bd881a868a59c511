// Package checkqueue implements the text-level check queue: a
// single-consumer work queue that schedules incremental re-checks of
// paragraph ranges across multiple open documents. It coalesces
// requests, dispatches them LIFO on a dedicated worker, and exposes
// stop (Stop: drop pending work, interrupt the current check and
// terminate the worker), full reset (Reset) and dispose-by-document
// (Dispose) as out-of-band controls.
//
// Producers are arbitrary concurrent goroutines; exactly one worker
// goroutine consumes the queue, so there is never more than one check
// in flight. The worker owns the linguistic engine exclusively —
// producers reach it only through Controller's public methods.
package checkqueue
