package mocknet

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// PeerID identifies a peer within a round. Values start at 0.
type PeerID uint32

// Transport is the messaging contract a round needs from its network.
// Implementations must be safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, to PeerID, msg []byte) error
	Receive(ctx context.Context, from PeerID) ([]byte, error)
	ReceiveAll(ctx context.Context, from []PeerID) (map[PeerID][]byte, error)
	Broadcast(ctx context.Context, msg []byte) error
}

var (
	errSelf      = errors.New("mocknet: self as peer")
	errDuplicate = errors.New("mocknet: duplicate peer")
)

// Net is a set of in-memory queues shared by the endpoints of one round.
type Net struct {
	mu sync.Mutex
	q  map[queueKey]chan []byte
}

func New() *Net { return &Net{q: make(map[queueKey]chan []byte)} }

type queueKey struct {
	from PeerID
	to   PeerID
	seq  uint64
}

func (n *Net) slot(key queueKey) chan []byte {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch := n.q[key]
	if ch == nil {
		ch = make(chan []byte, 1)
		n.q[key] = ch
	}
	return ch
}

func (n *Net) deliver(ctx context.Context, key queueKey, payload []byte) error {
	ch := n.slot(key)
	msg := append([]byte(nil), payload...)
	select {
	case ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Net) await(ctx context.Context, key queueKey) ([]byte, error) {
	ch := n.slot(key)
	select {
	case msg := <-ch:
		n.mu.Lock()
		delete(n.q, key)
		n.mu.Unlock()
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// link holds the sequence state of one direction between two peers.
type link struct {
	mu  sync.Mutex
	seq uint64
}

// Endpoint is one peer's view of a Net.
type Endpoint struct {
	net   *Net
	self  PeerID
	peers []PeerID // sorted, excludes self

	send map[PeerID]*link
	recv map[PeerID]*link
}

// Endpoint returns the endpoint of self. peers lists the members of the
// round; self is skipped if present.
func (n *Net) Endpoint(self PeerID, peers []PeerID) *Endpoint {
	e := &Endpoint{
		net:  n,
		self: self,
		send: make(map[PeerID]*link, len(peers)),
		recv: make(map[PeerID]*link, len(peers)),
	}
	for _, p := range peers {
		if p == self {
			continue
		}
		if _, ok := e.send[p]; ok {
			continue
		}
		e.send[p] = &link{}
		e.recv[p] = &link{}
		e.peers = append(e.peers, p)
	}
	sort.Slice(e.peers, func(i, j int) bool { return e.peers[i] < e.peers[j] })
	return e
}

// Self returns the endpoint's own PeerID.
func (e *Endpoint) Self() PeerID { return e.self }

// Peers returns the other members of the round in ascending order.
func (e *Endpoint) Peers() []PeerID {
	return append([]PeerID(nil), e.peers...)
}

func (e *Endpoint) Send(ctx context.Context, to PeerID, msg []byte) error {
	if to == e.self {
		return errSelf
	}
	l, ok := e.send[to]
	if !ok {
		return fmt.Errorf("mocknet: unknown peer %d", to)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := e.net.deliver(ctx, queueKey{from: e.self, to: to, seq: l.seq}, msg); err != nil {
		return err
	}
	l.seq++
	return nil
}

func (e *Endpoint) Receive(ctx context.Context, from PeerID) ([]byte, error) {
	if from == e.self {
		return nil, errSelf
	}
	l, ok := e.recv[from]
	if !ok {
		return nil, fmt.Errorf("mocknet: unknown peer %d", from)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	msg, err := e.net.await(ctx, queueKey{from: from, to: e.self, seq: l.seq})
	if err != nil {
		return nil, err
	}
	l.seq++
	return msg, nil
}

// ReceiveAll receives the next message from each listed peer. The result has
// exactly one entry per peer.
func (e *Endpoint) ReceiveAll(ctx context.Context, from []PeerID) (map[PeerID][]byte, error) {
	peers, err := e.normalize(from)
	if err != nil {
		return nil, err
	}

	links := make([]*link, len(peers))
	for i, p := range peers {
		links[i] = e.recv[p]
		links[i].mu.Lock()
	}
	defer func() {
		for _, l := range links {
			l.mu.Unlock()
		}
	}()

	out := make(map[PeerID][]byte, len(peers))
	for i, p := range peers {
		msg, err := e.net.await(ctx, queueKey{from: p, to: e.self, seq: links[i].seq})
		if err != nil {
			return nil, err
		}
		out[p] = msg
		links[i].seq++
	}
	return out, nil
}

// Broadcast sends msg to every other peer of the round in ascending order.
func (e *Endpoint) Broadcast(ctx context.Context, msg []byte) error {
	for _, p := range e.peers {
		if err := e.Send(ctx, p, msg); err != nil {
			return fmt.Errorf("mocknet: broadcast to %d: %w", p, err)
		}
	}
	return nil
}

func (e *Endpoint) normalize(from []PeerID) ([]PeerID, error) {
	uniq := make(map[PeerID]struct{}, len(from))
	for _, p := range from {
		if p == e.self {
			return nil, errSelf
		}
		if _, ok := e.recv[p]; !ok {
			return nil, fmt.Errorf("mocknet: unknown peer %d", p)
		}
		if _, ok := uniq[p]; ok {
			return nil, errDuplicate
		}
		uniq[p] = struct{}{}
	}
	peers := make([]PeerID, 0, len(uniq))
	for p := range uniq {
		peers = append(peers, p)
	}
	sort.Slice(peers, func(i, j int) bool { return peers[i] < peers[j] })
	return peers, nil
}

var _ Transport = (*Endpoint)(nil)
