// Package catalogimport 从CSV导入图书目录
//
// 文件格式（与books.csv一致）：
//
//	isbn,title,author,year
//	0380795272,Krondor: The Betrayal,Raymond E. Feist,1998
//
// 第一列为"isbn"的行视为表头并跳过。
package catalogimport

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/xiebiao/bookreview/internal/domain/catalog"
)

const columns = 4

// Read 解析CSV内容
// 任何一行格式错误都会返回带行号的错误，不会部分导入
func Read(r io.Reader) ([]catalog.Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = columns
	reader.TrimLeadingSpace = true

	var entries []catalog.Entry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv")
		}

		if strings.EqualFold(strings.TrimSpace(record[0]), "isbn") {
			continue
		}

		line, _ := reader.FieldPos(0)
		published, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: invalid year %q", line, record[3])
		}

		entry := catalog.Entry{
			ISBN:      strings.TrimSpace(record[0]),
			Title:     strings.TrimSpace(record[1]),
			Author:    strings.TrimSpace(record[2]),
			Published: published,
		}
		if err := entry.Validate(); err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// ImportFile 读取CSV文件并导入
func ImportFile(ctx context.Context, loader catalog.Loader, path string) (*catalog.LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	entries, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	result, err := loader.Load(ctx, entries)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}

	slog.InfoContext(ctx, "catalog imported",
		slog.String("file", path),
		slog.Int("rows", len(entries)),
		slog.Int("authors", result.Authors),
		slog.Int("books", result.Books),
	)
	return result, nil
}
