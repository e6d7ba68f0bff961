package benchmarks_test

import (
	"bytes"
	"fmt"
	"strconv"
	"testing"

	"github.com/reoring/qsenc"
	"github.com/reoring/qsenc/source"
)

// ---- Helpers ----

type listingQuery struct {
	SearchTerm string
	PageSize   int
	Ratio      float64
	Tags       []string
	Archived   bool
}

func (q listingQuery) DescribeQuery(v qsenc.Visitor) error {
	r := v.Record()
	r.Field("searchTerm").String(q.SearchTerm)
	r.Field("pageSize").Int(int64(q.PageSize))
	r.Field("ratio").Float(q.Ratio, 64)
	tags := r.Field("tag").Sequence()
	for _, t := range q.Tags {
		tags.Elem().String(t)
	}
	r.Field("archived").Bool(q.Archived)
	return nil
}

type listingTagged struct {
	SearchTerm string   `query:"searchTerm"`
	PageSize   int      `query:"pageSize"`
	Ratio      float64  `query:"ratio"`
	Tags       []string `query:"tag"`
	Archived   bool     `query:"archived"`
}

func smallListing() listingQuery {
	return listingQuery{SearchTerm: "red shoes & socks", PageSize: 50, Ratio: 0.75, Tags: []string{"sale", "new"}, Archived: true}
}

func smallTagged() listingTagged {
	q := smallListing()
	return listingTagged(q)
}

// generateWideJSONObject builds {"k0":"v0",...,"filters":[{"id":i,"on":bool},...]}.
func generateWideJSONObject(fields, filters int) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for k := 0; k < fields; k++ {
		fmt.Fprintf(&buf, "\"fieldName%d\":\"value %d\",", k, k)
	}
	buf.WriteString("\"filters\":[")
	for i := 0; i < filters; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("{\"id\":")
		buf.WriteString(strconv.Itoa(i))
		if i%2 == 0 {
			buf.WriteString(",\"on\":true}")
		} else {
			buf.WriteString(",\"on\":false}")
		}
	}
	buf.WriteString("]}")
	return buf.Bytes()
}

// ---- Micro benchmarks (small inputs) ----

func Benchmark_Encode_Small_Describer(b *testing.B) {
	e := qsenc.NewEncoder()
	q := smallListing()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Encode(q); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Encode_Small_Reflection(b *testing.B) {
	e := qsenc.NewEncoder()
	q := smallTagged()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Encode(q); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Encode_Small_SnakeSorted(b *testing.B) {
	e := qsenc.NewEncoder(qsenc.WithKeyEncoding(qsenc.KeysCamelToSnake), qsenc.WithSortedKeys(true))
	q := smallListing()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Encode(q); err != nil {
			b.Fatal(err)
		}
	}
}

// ---- Macro benchmarks (decoded documents) ----

func benchmarkEncodeJSONDocument(b *testing.B, fields, filters int) {
	data := generateWideJSONObject(fields, filters)
	e := qsenc.NewEncoder(qsenc.WithKeyEncoding(qsenc.KeysCamelToSnake))
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		doc, err := source.JSON(data)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := e.Encode(doc); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_EncodeJSON_Wide_100x100(b *testing.B) { benchmarkEncodeJSONDocument(b, 100, 100) }

func Benchmark_EncodeJSON_Wide_10x10000(b *testing.B) { benchmarkEncodeJSONDocument(b, 10, 10000) }

// Encoding a pre-decoded document isolates traversal and assembly from decoding.
func Benchmark_Encode_PreDecoded_10x10000(b *testing.B) {
	doc, err := source.JSON(generateWideJSONObject(10, 10000))
	if err != nil {
		b.Fatal(err)
	}
	e := qsenc.NewEncoder(qsenc.WithSortedKeys(true))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Encode(doc); err != nil {
			b.Fatal(err)
		}
	}
}

func TestGenerateWideJSONObject_Encodes(t *testing.T) {
	doc, err := source.JSON(generateWideJSONObject(2, 2))
	if err != nil {
		t.Fatalf("decode err=%v", err)
	}
	got, err := qsenc.NewEncoder(qsenc.WithKeyEncoding(qsenc.KeysCamelToSnake)).Encode(doc)
	if err != nil {
		t.Fatalf("encode err=%v", err)
	}
	want := "field_name0=value%200&field_name1=value%201&id=0&on&id=1"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
