package apiclientfake

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jrsteele09/go-ticketing-client/apiclient"
)

// Call is one recorded request
type Call struct {
	Endpoint string
	Request  apiclient.Request
}

// Reply is the canned answer for a route. Body is round-tripped through JSON
// into the caller's out value.
type Reply struct {
	Body any
	Err  error
}

// FakeCaller is an in-memory apiclient.Caller keyed by "METHOD endpoint"
type FakeCaller struct {
	lock    sync.Mutex
	replies map[string][]Reply
	calls   []Call
}

var _ apiclient.Caller = (*FakeCaller)(nil)

func NewFakeCaller() *FakeCaller {
	return &FakeCaller{replies: make(map[string][]Reply)}
}

// On queues replies for method and endpoint. The last reply repeats once the
// queue is drained.
func (f *FakeCaller) On(method, endpoint string, replies ...Reply) *FakeCaller {
	f.lock.Lock()
	defer f.lock.Unlock()

	key := method + " " + endpoint
	f.replies[key] = append(f.replies[key], replies...)
	return f
}

func (f *FakeCaller) Call(_ context.Context, endpoint string, req apiclient.Request, out any) error {
	f.lock.Lock()
	f.calls = append(f.calls, Call{Endpoint: endpoint, Request: req})
	reply, err := f.next(req.Method + " " + endpoint)
	f.lock.Unlock()

	if err != nil {
		return err
	}
	if reply.Err != nil {
		return reply.Err
	}
	if out == nil || reply.Body == nil {
		return nil
	}

	data, err := json.Marshal(reply.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// Calls returns every recorded request in order
func (f *FakeCaller) Calls() []Call {
	f.lock.Lock()
	defer f.lock.Unlock()

	calls := make([]Call, len(f.calls))
	copy(calls, f.calls)
	return calls
}

// LastCall returns the most recent request
func (f *FakeCaller) LastCall() Call {
	f.lock.Lock()
	defer f.lock.Unlock()

	if len(f.calls) == 0 {
		return Call{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *FakeCaller) next(key string) (Reply, error) {
	queue, ok := f.replies[key]
	if !ok || len(queue) == 0 {
		return Reply{}, fmt.Errorf("no reply registered for %s", key)
	}
	reply := queue[0]
	if len(queue) > 1 {
		f.replies[key] = queue[1:]
	}
	return reply, nil
}
