// Package bridge implements the live-update handle for already-rendered
// chart instances.
//
// A [Proxy] starts unbound. Binding it to a built configuration records the
// chart type and column-role mapping ("meta") for the rendered instance;
// from then on the proxy can push data replacements, option deltas, and
// dataset edits across the update boundary without the caller re-specifying
// columns. Update calls on an unbound proxy fail with INVALID_PROXY_STATE —
// they are a caller error, never silently ignored.
//
// The proxy only produces and transmits payloads. Applying them to the live
// instance is the remote side's job (see [ApplyMessage] for the in-process
// remote used by the chartbridge server).
package bridge

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/chartbridge/pkg/chart"
	"github.com/matzehuels/chartbridge/pkg/errors"
	"github.com/matzehuels/chartbridge/pkg/observability"
	"github.com/matzehuels/chartbridge/pkg/options"
	"github.com/matzehuels/chartbridge/pkg/table"
)

// Proxy is the live-update handle for one rendered chart instance.
// The zero value is not usable; create proxies with [NewProxy].
type Proxy struct {
	id        string
	transport Transport

	mu        sync.Mutex
	bound     bool
	chartType chart.Type
	meta      chart.Meta
	opts      options.Tree
}

// NewProxy creates an unbound proxy with a fresh opaque instance id.
func NewProxy(transport Transport) *Proxy {
	return &Proxy{
		id:        uuid.NewString(),
		transport: transport,
	}
}

// ID returns the opaque instance identifier used to address the rendered
// chart across the boundary.
func (p *Proxy) ID() string {
	return p.id
}

// Bound reports whether a chart instance has been bound to the proxy.
func (p *Proxy) Bound() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bound
}

// Bind records the rendered instance's chart type, column-role mapping, and
// options, moving the proxy to the bound state. Bind is called once the
// configuration has been handed to the rendering side.
func (p *Proxy) Bind(ctx context.Context, cfg *chart.Config) error {
	if cfg == nil {
		return errors.New(errors.ErrCodeInvalidInput, "cannot bind to a nil configuration")
	}

	p.mu.Lock()
	p.bound = true
	p.chartType = cfg.Type
	p.meta = cfg.Meta
	p.opts = options.Clone(cfg.Options)
	p.mu.Unlock()

	observability.Bridge().OnBind(ctx, p.id, cfg.Type.String())
	return nil
}

// UpdateData re-resolves columns against tbl using the cached meta merged
// key-by-key with override (override wins), rebuilds the data block, and
// transmits the replacement {data, meta} pair. Options are not transmitted.
// The merged meta becomes the new cached mapping on success.
func (p *Proxy) UpdateData(ctx context.Context, tbl *table.Table, override chart.Meta) error {
	p.mu.Lock()
	if !p.bound {
		p.mu.Unlock()
		return errUnbound("UpdateData")
	}
	typ := p.chartType
	merged := p.meta.Merge(override)
	p.mu.Unlock()

	data, meta, err := chart.BuildData(tbl, typ, merged.LabelColumn, merged.Spec())
	if err != nil {
		return err
	}

	msg := Message{Kind: KindUpdateData, ID: p.id, Data: &data, Meta: &meta}
	if err := p.send(ctx, msg); err != nil {
		return err
	}

	p.mu.Lock()
	p.meta = meta
	p.mu.Unlock()
	return nil
}

// UpdateOptions deep-merges overrides into the cached options tree and
// transmits only the delta; the remote side applies it to the live instance.
func (p *Proxy) UpdateOptions(ctx context.Context, overrides options.Tree) error {
	p.mu.Lock()
	if !p.bound {
		p.mu.Unlock()
		return errUnbound("UpdateOptions")
	}
	p.opts = options.Merge(p.opts, overrides)
	p.mu.Unlock()

	return p.send(ctx, Message{Kind: KindUpdateOptions, ID: p.id, Options: overrides})
}

// Options returns a copy of the proxy's cached options tree.
func (p *Proxy) Options() options.Tree {
	p.mu.Lock()
	defer p.mu.Unlock()
	return options.Clone(p.opts)
}

// Meta returns the cached column-role mapping.
func (p *Proxy) Meta() chart.Meta {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.meta
}

// AddDataset passes a caller-supplied dataset across the boundary unchanged.
func (p *Proxy) AddDataset(ctx context.Context, ds chart.Dataset) error {
	if !p.Bound() {
		return errUnbound("AddDataset")
	}
	return p.send(ctx, Message{Kind: KindAddDataset, ID: p.id, Dataset: &ds})
}

// RemoveDataset asks the remote side to drop the dataset at index. An
// out-of-range index is a no-op on the remote side, not a local error.
func (p *Proxy) RemoveDataset(ctx context.Context, index int) error {
	if !p.Bound() {
		return errUnbound("RemoveDataset")
	}
	return p.send(ctx, Message{Kind: KindRemoveDataset, ID: p.id, Index: &index})
}

func (p *Proxy) send(ctx context.Context, msg Message) error {
	hooks := observability.Bridge()
	if err := p.transport.Send(ctx, msg); err != nil {
		hooks.OnSendError(ctx, string(msg.Kind), p.id, err)
		return err
	}
	hooks.OnMessage(ctx, string(msg.Kind), p.id)
	return nil
}

func errUnbound(op string) error {
	return errors.New(errors.ErrCodeInvalidProxyState,
		"%s called before a chart instance was bound", op)
}
