package batch

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func collectRecords(t *testing.T, input string) []InputRecord {
	t.Helper()
	logger := zerolog.Nop()
	reader := NewReader(strings.NewReader(input), &logger)

	var records []InputRecord
	for record := range reader.ReadAll(context.Background()) {
		records = append(records, record)
	}
	return records
}

func TestReadAll_ParsesRecords(t *testing.T) {
	input := `{"documents":"https://example.com/a.txt","questions":["What?"]}
{"documents":"https://example.com/b.txt","questions":["How?","Why?"]}
`
	records := collectRecords(t, input)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].LineNumber != 1 || records[1].LineNumber != 2 {
		t.Errorf("unexpected line numbers: %d, %d", records[0].LineNumber, records[1].LineNumber)
	}
	if records[0].Request.Documents != "https://example.com/a.txt" {
		t.Errorf("unexpected document reference %q", records[0].Request.Documents)
	}
	if len(records[1].Request.Questions) != 2 {
		t.Errorf("expected 2 questions in second record, got %d", len(records[1].Request.Questions))
	}
}

func TestReadAll_SkipsBlankLinesButKeepsNumbering(t *testing.T) {
	input := "{\"documents\":\"a\",\"questions\":[\"q\"]}\n\n   \n{\"documents\":\"b\",\"questions\":[\"q\"]}\n"

	records := collectRecords(t, input)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].LineNumber != 4 {
		t.Errorf("blank lines must still count toward line numbers, got %d", records[1].LineNumber)
	}
}

func TestReadAll_MalformedLineCarriesError(t *testing.T) {
	input := "{\"documents\":\"a\",\"questions\":[\"q\"]}\nnot json\n{\"documents\":\"b\",\"questions\":[\"q\"]}\n"

	records := collectRecords(t, input)

	if len(records) != 3 {
		t.Fatalf("malformed lines must still yield records, got %d", len(records))
	}
	if records[1].Error == nil {
		t.Error("malformed record must carry its parse error")
	}
	if records[0].Error != nil || records[2].Error != nil {
		t.Error("well-formed records must not carry errors")
	}
}

func TestReadAll_CancelStopsStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var lines strings.Builder
	for i := 0; i < 1000; i++ {
		lines.WriteString("{\"documents\":\"a\",\"questions\":[\"q\"]}\n")
	}

	logger := zerolog.Nop()
	reader := NewReader(strings.NewReader(lines.String()), &logger)

	out := reader.ReadAll(ctx)
	<-out
	cancel()

	// Drain until the goroutine notices the cancellation and closes the
	// channel. The point is that it terminates at all.
	count := 0
	for range out {
		count++
	}
	if count >= 1000 {
		t.Errorf("cancellation must stop the stream early, drained %d records", count)
	}
}
