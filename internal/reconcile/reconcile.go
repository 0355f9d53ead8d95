// Package reconcile runs one trusted-vs-candidate comparison per request
// and logs every skipped record.
package reconcile

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rawbytedev/chunkdiff"
	"github.com/rawbytedev/chunkdiff/internal/config"
	"github.com/rawbytedev/chunkdiff/internal/log"
)

type Options struct {
	// Mode is config.ModePositional (default) or config.ModeKeyed.
	Mode string
}

// Reconciler holds no per-request state and may be shared between
// goroutines.
type Reconciler struct {
	log  *log.Logger
	mode string
	diff func(trusted, candidate []byte) ([]byte, error)
}

// Report describes a single reconciliation.
type Report struct {
	ID              string   `json:"id" yaml:"id"`
	Mode            string   `json:"mode" yaml:"mode"`
	TrustedBytes    int      `json:"trusted_bytes" yaml:"trusted_bytes"`
	CandidateBytes  int      `json:"candidate_bytes" yaml:"candidate_bytes"`
	CorrectionBytes int      `json:"correction_bytes" yaml:"correction_bytes"`
	Corrected       []string `json:"corrected" yaml:"corrected"`
	Diagnostics     []string `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`

	Correction []byte                `json:"-" yaml:"-"`
	Components []chunkdiff.Component `json:"-" yaml:"-"`
}

func New(logger *log.Logger, opts Options) (*Reconciler, error) {
	if logger == nil {
		logger = log.Nop()
	}
	r := &Reconciler{log: logger, mode: opts.Mode}
	switch opts.Mode {
	case "", config.ModePositional:
		r.mode = config.ModePositional
		r.diff = chunkdiff.Diff
	case config.ModeKeyed:
		r.diff = chunkdiff.DiffKeyed
	default:
		return nil, fmt.Errorf("unknown diff mode %q", opts.Mode)
	}
	return r, nil
}

// Mode reports the diff mode in use.
func (r *Reconciler) Mode() string { return r.mode }

// Reconcile serializes both component sets and reconciles them.
func (r *Reconciler) Reconcile(trusted, candidate []chunkdiff.Component) (*Report, error) {
	rep := r.newReport()
	l := r.log.With("request_id", rep.ID)

	ts, errs := chunkdiff.Serialize(trusted)
	r.record(l, rep, "trusted component skipped", errs)
	cs, errs := chunkdiff.Serialize(candidate)
	r.record(l, rep, "candidate component skipped", errs)

	return r.run(l, rep, ts, cs)
}

// ReconcileStreams reconciles two already-serialized streams, e.g. the
// server's own state against bytes received from a client.
func (r *Reconciler) ReconcileStreams(trusted, candidate []byte) (*Report, error) {
	rep := r.newReport()
	return r.run(r.log.With("request_id", rep.ID), rep, trusted, candidate)
}

func (r *Reconciler) newReport() *Report {
	return &Report{ID: uuid.NewString(), Mode: r.mode}
}

func (r *Reconciler) run(l *log.Logger, rep *Report, trusted, candidate []byte) (*Report, error) {
	rep.TrustedBytes = len(trusted)
	rep.CandidateBytes = len(candidate)

	correction, err := r.diff(trusted, candidate)
	if err != nil {
		l.Error("diff failed", map[string]any{"mode": r.mode, "error": err.Error()})
		return nil, fmt.Errorf("reconcile %s: %w", rep.ID, err)
	}
	rep.Correction = correction
	rep.CorrectionBytes = len(correction)

	comps, errs, err := chunkdiff.Decode(correction)
	if err != nil {
		// Diff only emits whole chunks, so this means a codec bug.
		l.Error("correction is not a valid stream", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("reconcile %s: %w", rep.ID, err)
	}
	r.record(l, rep, "correction chunk skipped", errs)

	rep.Components = comps
	rep.Corrected = make([]string, 0, len(comps))
	for _, c := range comps {
		rep.Corrected = append(rep.Corrected, Describe(c))
	}

	l.Info("reconciled", map[string]any{
		"mode":             r.mode,
		"trusted_bytes":    rep.TrustedBytes,
		"candidate_bytes":  rep.CandidateBytes,
		"correction_bytes": rep.CorrectionBytes,
		"corrected":        len(comps),
	})
	return rep, nil
}

func (r *Reconciler) record(l *log.Logger, rep *Report, msg string, errs []chunkdiff.RecordError) {
	for _, e := range errs {
		l.Warn(msg, map[string]any{
			"index": e.Index,
			"tag":   fmt.Sprintf("0x%02x", e.Kind),
			"error": e.Err.Error(),
		})
		rep.Diagnostics = append(rep.Diagnostics, fmt.Sprintf("%s: %v", msg, e))
	}
}

// Describe renders a component as "Kind=value".
func Describe(c chunkdiff.Component) string {
	if v, ok := chunkdiff.Value(c); ok {
		return fmt.Sprintf("%v=%d", c.Kind(), v)
	}
	return fmt.Sprintf("%v=%v", c.Kind(), c)
}
