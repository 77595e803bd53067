package memory

import (
	"context"
)

const COPY_GRANULE = 4 // Bytes moved per read-then-write step.

// CopyRequest describes a DMA-style transfer between two physical
// addresses. Copy services it inline; a queued DMA engine would take the
// same value over a channel.
type CopyRequest struct {
	Source      uint32
	Destination uint32
	Length      int
}

// Copy moves req.Length bytes in 4-byte granules, each granule read fully
// before it is written. A trailing partial granule is not copied. The copy
// stops early if ctx is cancelled, returning the bytes moved so far.
func (r *Router) Copy(ctx context.Context, req CopyRequest) (count int, err error) {
	var granule [COPY_GRANULE]byte

	for count+COPY_GRANULE <= req.Length {
		if err = ctx.Err(); err != nil {
			return
		}

		offset := uint32(count)
		err = r.Read(req.Source+offset, granule[:])
		if err != nil {
			return
		}
		err = r.Write(req.Destination+offset, granule[:])
		if err != nil {
			return
		}

		count += COPY_GRANULE
	}

	if r.Verbose {
		r.Log.Debugf("router: copy 0x%08x -> 0x%08x (%d of %d bytes)",
			req.Source, req.Destination, count, req.Length)
	}

	return
}
