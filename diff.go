package chunkdiff

import "fmt"

// Diff compares two aligned streams position by position and returns the
// trusted chunks whose payload differs from the candidate's. Both streams
// must hold the same number of chunks with the same tag at each position.
func Diff(trusted, candidate []byte) ([]byte, error) {
	tc, err := ParseChunks(trusted)
	if err != nil {
		return nil, fmt.Errorf("trusted: %w", err)
	}
	cc, err := ParseChunks(candidate)
	if err != nil {
		return nil, fmt.Errorf("candidate: %w", err)
	}
	if len(tc) != len(cc) {
		return nil, &LengthMismatchError{Trusted: len(tc), Candidate: len(cc)}
	}
	var out []byte
	for i := range tc {
		if tc[i].Kind != cc[i].Kind {
			return nil, &KindMismatchError{Index: i, Trusted: tc[i].Kind, Candidate: cc[i].Kind}
		}
		if !tc[i].Equal(cc[i]) {
			out = tc[i].AppendTo(out)
		}
	}
	return out, nil
}

type chunkKey struct {
	kind byte
	nth  int
}

// keyChunks indexes chunks by tag and occurrence of that tag.
func keyChunks(chunks []Chunk) (map[chunkKey]Chunk, []chunkKey) {
	seen := make(map[byte]int, len(chunks))
	m := make(map[chunkKey]Chunk, len(chunks))
	keys := make([]chunkKey, 0, len(chunks))
	for _, c := range chunks {
		k := chunkKey{kind: c.Kind, nth: seen[c.Kind]}
		seen[c.Kind]++
		m[k] = c
		keys = append(keys, k)
	}
	return m, keys
}

// DiffKeyed matches chunks by tag instead of position. The n-th chunk of a
// tag in trusted is compared against the n-th chunk of the same tag in
// candidate. Trusted chunks with no counterpart are always emitted;
// candidate-only chunks are ignored. Output follows trusted order.
func DiffKeyed(trusted, candidate []byte) ([]byte, error) {
	tc, err := ParseChunks(trusted)
	if err != nil {
		return nil, fmt.Errorf("trusted: %w", err)
	}
	cc, err := ParseChunks(candidate)
	if err != nil {
		return nil, fmt.Errorf("candidate: %w", err)
	}
	byKey, _ := keyChunks(cc)
	tm, keys := keyChunks(tc)
	var out []byte
	for _, k := range keys {
		t := tm[k]
		if c, ok := byKey[k]; ok && t.Equal(c) {
			continue
		}
		out = t.AppendTo(out)
	}
	return out, nil
}

// Apply patches candidate with a correction stream. Each correction chunk
// replaces the candidate chunk with the same tag; tags missing from
// candidate are appended. A tag appearing more than once in either stream
// is rejected with ErrAmbiguousKind, since a correction does not record
// which occurrence it targets. Apply therefore only inverts Diff and
// DiffKeyed for trusted streams that hold each tag at most once.
func Apply(candidate, correction []byte) ([]byte, error) {
	cc, err := ParseChunks(candidate)
	if err != nil {
		return nil, fmt.Errorf("candidate: %w", err)
	}
	fix, err := ParseChunks(correction)
	if err != nil {
		return nil, fmt.Errorf("correction: %w", err)
	}
	pos := make(map[byte]int, len(cc))
	for i, c := range cc {
		if _, dup := pos[c.Kind]; dup {
			return nil, fmt.Errorf("%w: tag 0x%02x appears more than once in candidate", ErrAmbiguousKind, c.Kind)
		}
		pos[c.Kind] = i
	}
	fixed := make(map[byte]struct{}, len(fix))
	var tail []Chunk
	for _, f := range fix {
		if _, dup := fixed[f.Kind]; dup {
			return nil, fmt.Errorf("%w: tag 0x%02x appears more than once in correction", ErrAmbiguousKind, f.Kind)
		}
		fixed[f.Kind] = struct{}{}
		if i, ok := pos[f.Kind]; ok {
			cc[i] = f
			continue
		}
		tail = append(tail, f)
	}
	out := make([]byte, 0, len(candidate)+len(correction))
	for _, c := range cc {
		out = c.AppendTo(out)
	}
	for _, c := range tail {
		out = c.AppendTo(out)
	}
	return out, nil
}

// Changed lists the kinds carried by a correction stream, in order.
// Unknown tags are reported as their raw Kind value.
func Changed(correction []byte) ([]Kind, error) {
	var kinds []Kind
	s := NewScanner(correction)
	for s.Next() {
		kinds = append(kinds, Kind(s.Chunk().Kind))
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return kinds, nil
}
