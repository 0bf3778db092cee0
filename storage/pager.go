package storage

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// PageSize is the fixed size of every page in the database file.
const PageSize = 4096

// TableMaxPages is the number of page slots in the pager's cache; valid
// page numbers run from 0 to TableMaxPages-1.
const TableMaxPages = 100

// Pager owns the database file descriptor and a fixed-capacity page cache.
// It lazily loads pages on first access and writes them back only on an
// explicit Flush. The cache is write-back: only a clean Close is
// guaranteed durable.
type Pager struct {
	file       *os.File
	fileLength int64
	numPages   uint32
	pages      [TableMaxPages][]byte

	logger *zap.Logger
}

// OpenPager opens (creating if necessary) the database file at path and
// measures its length by seeking to the end. A length that is not a
// whole multiple of PageSize is reported as ErrCorruptFile; the caller
// (the REPL's top level) treats that as fatal.
func OpenPager(path string, logger *zap.Logger) (*Pager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", path, err)
	}

	length, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("seeking to end of %s: %w", path, err)
	}

	if length%PageSize != 0 {
		f.Close()
		logger.Error("db file is not a whole number of pages",
			zap.String("path", path), zap.Int64("length", length))
		return nil, ErrCorruptFile
	}

	return &Pager{
		file:       f,
		fileLength: length,
		numPages:   uint32(length / PageSize),
		logger:     logger,
	}, nil
}

// GetPage returns the cached buffer for pageNum, loading it from disk first
// if this is the first access. Pages beyond the current end of file are
// returned as a freshly zeroed buffer: make([]byte, PageSize) is always
// zero-filled in Go, so a page that doesn't exist on disk yet still reads
// back clean.
func (p *Pager) GetPage(pageNum uint32) ([]byte, error) {
	if pageNum >= TableMaxPages {
		p.logger.Error("tried to fetch page number out of bounds",
			zap.Uint32("page_num", pageNum), zap.Uint32("max", TableMaxPages))
		return nil, &PageBoundsError{PageNum: pageNum, Max: TableMaxPages}
	}

	if p.pages[pageNum] == nil {
		buf := make([]byte, PageSize)

		if int64(pageNum)*PageSize < p.fileLength {
			if _, err := p.file.ReadAt(buf, int64(pageNum)*PageSize); err != nil && err != io.EOF {
				return nil, fmt.Errorf("reading page %d: %w", pageNum, err)
			}
		}

		p.pages[pageNum] = buf
	}

	if pageNum+1 > p.numPages {
		p.numPages = pageNum + 1
	}

	return p.pages[pageNum], nil
}

// NumPages returns the number of pages the pager currently tracks, the
// high-water mark of pages ever fetched or already present on disk.
func (p *Pager) NumPages() uint32 {
	return p.numPages
}

// Flush writes the cached buffer for pageNum back to its offset in the
// file. Flushing a page that was never loaded is a programming error and
// reported as ErrFlushEmptySlot.
func (p *Pager) Flush(pageNum uint32) error {
	page := p.pages[pageNum]
	if page == nil {
		p.logger.Error("tried to flush a page that was never loaded", zap.Uint32("page_num", pageNum))
		return ErrFlushEmptySlot
	}

	if _, err := p.file.WriteAt(page, int64(pageNum)*PageSize); err != nil {
		return fmt.Errorf("writing page %d: %w", pageNum, err)
	}

	return nil
}

// Close flushes every non-empty cache slot within [0, numPages), then
// closes the underlying file descriptor. A second call will find an
// already-closed file and fail; callers invoke it exactly once, from
// Table.Close.
func (p *Pager) Close() error {
	flushed := 0
	for i := uint32(0); i < p.numPages; i++ {
		if p.pages[i] == nil {
			continue
		}
		if err := p.Flush(i); err != nil {
			return err
		}
		p.pages[i] = nil
		flushed++
	}

	if err := p.file.Close(); err != nil {
		return fmt.Errorf("closing db file: %w", err)
	}

	p.logger.Info("pager closed", zap.Int("pages_flushed", flushed))
	return nil
}
