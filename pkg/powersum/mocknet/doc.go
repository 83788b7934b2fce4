// Package mocknet provides an in-memory transport for simulating a
// collision-resolution round between peers.
//
// Each peer gets an Endpoint that can Send to, Receive from and Broadcast to
// the other peers. Messages between a pair of peers are delivered in the
// order they were sent, and every blocking call honours context
// cancellation.
//
// # Usage
//
//	net := mocknet.New()
//	peers := []mocknet.PeerID{0, 1, 2}
//	ep0 := net.Endpoint(0, peers)
//	ep1 := net.Endpoint(1, peers)
//	ep2 := net.Endpoint(2, peers)
//
//	// Each peer, in its own goroutine:
//	_ = ep0.Broadcast(ctx, vector)
//	batch, _ := ep0.ReceiveAll(ctx, ep0.Peers())
//
// Always bound rounds with context.WithTimeout; a peer that never sends
// blocks the others otherwise.
//
// # Limitations
//
// Mocknet is for tests and examples only. It provides no encryption, no
// authentication and no latency or loss simulation.
package mocknet
