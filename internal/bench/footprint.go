package bench

import (
	"runtime"

	"github.com/lth/hashflood/internal/hashmodel"
	"github.com/lth/hashflood/internal/table"
)

type Footprint struct {
	Count       int
	Length      int
	TableBytes  uint64
	StringBytes uint64
	Buckets     int
	MaxChain    int
}

// MeasureFootprint fills a table with strings and reports the heap it
// retains. StringBytes counts string contents, which the caller already
// holds and the table only references.
func MeasureFootprint(model hashmodel.Model, strings []string) Footprint {
	fp := Footprint{Count: len(strings)}
	for _, s := range strings {
		fp.StringBytes += uint64(len(s))
	}
	if len(strings) > 0 {
		fp.Length = len(strings[0])
	}

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	t := table.New(model, 0)
	for _, s := range strings {
		t.Put(s, s)
	}

	runtime.GC()
	runtime.ReadMemStats(&after)

	if after.HeapAlloc > before.HeapAlloc {
		fp.TableBytes = after.HeapAlloc - before.HeapAlloc
	}
	fp.Buckets = t.Buckets()
	fp.MaxChain = t.MaxChain()

	runtime.KeepAlive(t)
	return fp
}
