package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Listing is one row of the monthly farm-tech listing feed.
type Listing struct {
	CurationNo      string
	Title           string
	ImageURL        string
	ContentCount    string
	AttachGroupCode string
	AttachStoreName string
}

// Detail is the extracted body text of one listing.
type Detail struct {
	CurationNo string
	Title      string
	Text       string
}

// Attachment carries the document attachment URLs of one listing.
type Attachment struct {
	CurationNo string
	GroupCode  string
	AttachURL  string
	LinkURL    string
}

// Chunk is one overlapping window of a detail body, ready for embedding.
// ChunkID is "<curationNo>_<chunkNo zero-padded to 3>".
type Chunk struct {
	CurationNo string
	Title      string
	ChunkNo    int
	Start      int
	End        int
	Text       string
	ChunkID    string
}

// CSV layouts for the intermediate files the pipeline steps exchange. The
// column names match the upstream API fields so the files stay greppable
// against the API docs.

var (
	listingHeader    = []string{"curationNo", "cntntsSj", "curationImgUrl", "contentCnt", "atchmnflGroupEsntlCode", "atchmnflStreNm"}
	detailHeader     = []string{"curationNo", "title", "text"}
	attachmentHeader = []string{"curationNo", "atchmnflGroupEsntlCodeOrtx", "atchmnflUrl", "linkUrl"}
	chunkHeader      = []string{"curationNo", "title", "chunk_no", "start", "end", "chunk", "chunk_id"}
)

// WriteListings writes listings as CSV.
func WriteListings(w io.Writer, listings []Listing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(listingHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, l := range listings {
		if err := cw.Write([]string{l.CurationNo, l.Title, l.ImageURL, l.ContentCount, l.AttachGroupCode, l.AttachStoreName}); err != nil {
			return fmt.Errorf("writing listing %q: %w", l.CurationNo, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadListings reads a listings CSV.
func ReadListings(r io.Reader) ([]Listing, error) {
	rows, err := readRows(r, len(listingHeader))
	if err != nil {
		return nil, err
	}
	listings := make([]Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, Listing{
			CurationNo:      row[0],
			Title:           row[1],
			ImageURL:        row[2],
			ContentCount:    row[3],
			AttachGroupCode: row[4],
			AttachStoreName: row[5],
		})
	}
	return listings, nil
}

// WriteDetails writes detail bodies as CSV.
func WriteDetails(w io.Writer, details []Detail) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(detailHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, d := range details {
		if err := cw.Write([]string{d.CurationNo, d.Title, d.Text}); err != nil {
			return fmt.Errorf("writing detail %q: %w", d.CurationNo, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadDetails reads a details CSV.
func ReadDetails(r io.Reader) ([]Detail, error) {
	rows, err := readRows(r, len(detailHeader))
	if err != nil {
		return nil, err
	}
	details := make([]Detail, 0, len(rows))
	for _, row := range rows {
		details = append(details, Detail{CurationNo: row[0], Title: row[1], Text: row[2]})
	}
	return details, nil
}

// WriteAttachments writes attachment info as CSV.
func WriteAttachments(w io.Writer, attachments []Attachment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(attachmentHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, a := range attachments {
		if err := cw.Write([]string{a.CurationNo, a.GroupCode, a.AttachURL, a.LinkURL}); err != nil {
			return fmt.Errorf("writing attachment %q: %w", a.CurationNo, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadAttachments reads an attachment CSV.
func ReadAttachments(r io.Reader) ([]Attachment, error) {
	rows, err := readRows(r, len(attachmentHeader))
	if err != nil {
		return nil, err
	}
	attachments := make([]Attachment, 0, len(rows))
	for _, row := range rows {
		attachments = append(attachments, Attachment{
			CurationNo: row[0],
			GroupCode:  row[1],
			AttachURL:  row[2],
			LinkURL:    row[3],
		})
	}
	return attachments, nil
}

// WriteChunks writes chunks as CSV.
func WriteChunks(w io.Writer, chunks []Chunk) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(chunkHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, c := range chunks {
		row := []string{
			c.CurationNo, c.Title,
			strconv.Itoa(c.ChunkNo), strconv.Itoa(c.Start), strconv.Itoa(c.End),
			c.Text, c.ChunkID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing chunk %q: %w", c.ChunkID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadChunks reads a chunks CSV.
func ReadChunks(r io.Reader) ([]Chunk, error) {
	rows, err := readRows(r, len(chunkHeader))
	if err != nil {
		return nil, err
	}
	chunks := make([]Chunk, 0, len(rows))
	for _, row := range rows {
		chunkNo, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("parsing chunk_no %q: %w", row[2], err)
		}
		start, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("parsing start %q: %w", row[3], err)
		}
		end, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, fmt.Errorf("parsing end %q: %w", row[4], err)
		}
		chunks = append(chunks, Chunk{
			CurationNo: row[0],
			Title:      row[1],
			ChunkNo:    chunkNo,
			Start:      start,
			End:        end,
			Text:       row[5],
			ChunkID:    row[6],
		})
	}
	return chunks, nil
}

// readRows reads all data rows, skipping the header and validating width.
func readRows(r io.Reader, width int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = width

	all, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[1:], nil
}

// ReadChunksFile reads a chunks CSV from disk.
func ReadChunksFile(path string) ([]Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()
	return ReadChunks(f)
}

// ReadAttachmentsFile reads an attachment CSV from disk.
func ReadAttachmentsFile(path string) ([]Attachment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()
	return ReadAttachments(f)
}
