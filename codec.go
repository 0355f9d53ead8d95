package chunkdiff

// Serialize concatenates the chunk encoding of each component in input
// order. Components that cannot be encoded are dropped and reported; they
// never abort the call.
func Serialize(components []Component) ([]byte, []RecordError) {
	var errs []RecordError
	out := make([]byte, 0, len(components)*(HeaderSize+8))
	var scratch []byte
	for i, c := range components {
		if c == nil {
			errs = append(errs, RecordError{Index: i, Err: ErrNilComponent})
			continue
		}
		scratch = c.appendPayload(scratch[:0])
		out = AppendChunk(out, c.Kind().Tag(), scratch)
	}
	return out, errs
}

// ParseChunks splits a stream into chunks without looking at payloads.
// A truncated stream fails the whole call with a *MalformedChunkError.
// Returned payloads alias stream.
func ParseChunks(stream []byte) ([]Chunk, error) {
	var chunks []Chunk
	s := NewScanner(stream)
	for s.Next() {
		chunks = append(chunks, s.Chunk())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return chunks, nil
}

// Deserialize turns chunks into components, keeping order. Chunks with an
// unknown tag or a payload of the wrong width are skipped and reported.
func Deserialize(chunks []Chunk) ([]Component, []RecordError) {
	var errs []RecordError
	out := make([]Component, 0, len(chunks))
	for i, c := range chunks {
		comp, err := ToComponent(c)
		if err != nil {
			errs = append(errs, RecordError{Index: i, Kind: c.Kind, Err: err})
			continue
		}
		out = append(out, comp)
	}
	return out, errs
}

// Decode is ParseChunks followed by Deserialize.
func Decode(stream []byte) ([]Component, []RecordError, error) {
	chunks, err := ParseChunks(stream)
	if err != nil {
		return nil, nil, err
	}
	comps, errs := Deserialize(chunks)
	return comps, errs, nil
}
