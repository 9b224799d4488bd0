package patcher

import (
	"strings"

	"github.com/aescanero/confpatch/pkg/hadoopconf"
)

// lzoMarker matches the LzoCodec and LzopCodec class names. Hadoop does not
// ship them, yet codec factories may instantiate every listed class.
const lzoMarker = ".lzo.Lzo"

// SanitizeCodecs removes every io.compression.codecs entry containing
// ".lzo.Lzo" and returns the removed entries. Remaining entries keep their
// order. The store is only written when something is removed.
func SanitizeCodecs(store *hadoopconf.Configuration) []string {
	value, ok := store.Get(hadoopconf.KeyCompressionCodecs)
	if !ok || !strings.Contains(value, lzoMarker) {
		return nil
	}

	var kept, removed []string
	for _, codec := range strings.Split(value, ",") {
		if strings.Contains(codec, lzoMarker) {
			removed = append(removed, codec)
			continue
		}
		kept = append(kept, codec)
	}

	store.Set(hadoopconf.KeyCompressionCodecs, strings.Join(kept, ","))
	return removed
}
