// Package server exposes the two-call HTTP surface and owns the
// detached download pipeline behind /download.
//
// POST /select  {titles, type} -> {session_id, choices}
// POST /download {session_id, indices} -> {session_id}
//
// /download answers as soon as the session is consumed and the
// background pipeline is launched; expansion, admission and submission
// failures after that point are logged, never reported to the caller.
package server
