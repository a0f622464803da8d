// Package bench compares structjson with the other codecs in codecs on the
// usage records. It only holds benchmarks.
package bench
