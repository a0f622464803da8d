package bench

import (
	"testing"
	"time"

	"github.com/quickwritereader/structjson/codecs"
	"github.com/quickwritereader/structjson/usage"
)

var (
	sinkBytes   []byte
	sinkTwitter usage.TwitterData
	sinkPlayer  usage.Player
)

func twitterDoc(b *testing.B) []byte {
	b.Helper()
	doc, err := usage.SyntheticTwitter(1000)
	if err != nil {
		b.Fatal(err)
	}
	return doc
}

func BenchmarkDecodeTwitter(b *testing.B) {
	doc := twitterDoc(b)
	for _, name := range codecs.Names() {
		if !codecs.IsJSON(name) {
			continue
		}
		c, err := codecs.ByName[usage.TwitterData](name)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(doc)))
			b.ResetTimer()

			start := time.Now()
			for i := 0; i < b.N; i++ {
				v, err := c.Decode(doc)
				if err != nil {
					b.Fatal(err)
				}
				sinkTwitter = v
			}
			elapsed := time.Since(start)

			b.StopTimer()
			mbs := float64(len(doc)) * float64(b.N) / 1e6 / elapsed.Seconds()
			b.Logf("%s: %.2f MB/s over %d bytes", name, mbs, len(doc))
		})
	}
}

func BenchmarkEncodeTwitter(b *testing.B) {
	data, err := codecs.JSON[usage.TwitterData]{}.Decode(twitterDoc(b))
	if err != nil {
		b.Fatal(err)
	}
	for _, name := range codecs.Names() {
		c, err := codecs.ByName[usage.TwitterData](name)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				out, err := c.Encode(data)
				if err != nil {
					b.Fatal(err)
				}
				sinkBytes = out
			}
			b.StopTimer()
			b.Logf("%s size: %d bytes", name, len(sinkBytes))
		})
	}
}

func BenchmarkPlayerRoundTrip(b *testing.B) {
	for _, name := range codecs.Names() {
		c, err := codecs.ByName[usage.Player](name)
		if err != nil {
			b.Fatal(err)
		}
		p := usage.SamplePlayer()
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			start := time.Now()
			for i := 0; i < b.N; i++ {
				out, err := c.Encode(p)
				if err != nil {
					b.Fatal(err)
				}
				if sinkPlayer, err = c.Decode(out); err != nil {
					b.Fatal(err)
				}
			}
			elapsed := time.Since(start)

			b.StopTimer()
			perOp := float64(elapsed.Nanoseconds()) / float64(b.N)
			b.Logf("%s: per-roundtrip = %.2f ns/op, %.2f ops/sec", name, perOp, 1e9/perOp)
		})
	}
}

func BenchmarkPlayerRoundTrip_MUS(b *testing.B) {
	c := codecs.MUS[usage.Player]{Ser: usage.PlayerMUS}
	p := usage.SamplePlayer()

	b.ReportAllocs()
	b.ResetTimer()

	start := time.Now()
	for i := 0; i < b.N; i++ {
		out, err := c.Encode(p)
		if err != nil {
			b.Fatal(err)
		}
		sinkBytes = out
		if sinkPlayer, err = c.Decode(out); err != nil {
			b.Fatal(err)
		}
	}
	elapsed := time.Since(start)

	b.StopTimer()
	perOp := float64(elapsed.Nanoseconds()) / float64(b.N)
	b.Logf("mus: per-roundtrip = %.2f ns/op, %.2f ops/sec", perOp, 1e9/perOp)
	b.Logf("mus size: %d bytes", len(sinkBytes))
}
