package export

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/arthur-debert/probsheet/formats"
	"github.com/arthur-debert/probsheet/sheet"
	"github.com/arthur-debert/probsheet/types"
)

// BuildArchive renders the sheet and every problem document in memory
func BuildArchive(s types.Sheet, format *formats.DocumentFormat) (*ArchiveData, error) {
	if format == nil {
		format = formats.PlainText
	}

	encoded, err := sheet.Encode(s)
	if err != nil {
		return nil, err
	}

	data := &ArchiveData{Sheet: encoded, Modified: s.LastUpdated, Objects: make([]ObjectFile, 0)}
	for ti, topic := range s.Topics {
		for si, section := range topic.Sections {
			for pi, p := range section.Problems {
				doc := ProblemDocument(topic, section, pi+1, p)
				data.Objects = append(data.Objects, ObjectFile{
					Filename: documentPath(ti+1, topic.Title, si+1, section.Title, pi+1, p.Title, format),
					Modified: s.LastUpdated,
					Content:  format.Serialize(doc),
				})
			}
		}
	}
	return data, nil
}

// Archive writes the sheet as a zip file at outputPath
func Archive(s types.Sheet, format *formats.DocumentFormat, outputPath string) error {
	data, err := BuildArchive(s, format)
	if err != nil {
		return err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := WriteArchive(data, file); err != nil {
		_ = file.Close()
		_ = os.Remove(outputPath)
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close archive file: %w", err)
	}
	return nil
}

// WriteArchive streams archive data as a zip to w
func WriteArchive(data *ArchiveData, w io.Writer) error {
	zipWriter := zip.NewWriter(w)

	if err := addToZip(zipWriter, SheetFilename, data.Sheet, data.Modified); err != nil {
		return fmt.Errorf("failed to add sheet to zip: %w", err)
	}

	for _, object := range data.Objects {
		if err := addToZip(zipWriter, object.Filename, []byte(object.Content), object.Modified); err != nil {
			return fmt.Errorf("failed to add %s to zip: %w", object.Filename, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}
	return nil
}

// addToZip adds one deflated entry
func addToZip(zipWriter *zip.Writer, name string, content []byte, modified time.Time) error {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	}

	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create %s in zip: %w", name, err)
	}

	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// ExtractArchive reads a zip produced by Archive back into memory
func ExtractArchive(archivePath string) (_ *ArchiveData, err error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		if cerr := reader.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close archive: %w", cerr)
		}
	}()

	data := &ArchiveData{Objects: make([]ObjectFile, 0)}
	for _, file := range reader.File {
		content, err := readZipFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}

		if file.Name == SheetFilename {
			data.Sheet = content
			data.Modified = file.Modified
			continue
		}
		data.Objects = append(data.Objects, ObjectFile{
			Filename: file.Name,
			Modified: file.Modified,
			Content:  string(content),
		})
	}

	if data.Sheet == nil {
		return nil, errors.New("archive has no " + SheetFilename)
	}
	return data, nil
}

// ReadArchive decodes the sheet stored inside an archive. sheet.json gives
// the structure; edits made to the problem documents since the export are
// applied on top of it.
func ReadArchive(archivePath string) (types.Sheet, error) {
	data, err := ExtractArchive(archivePath)
	if err != nil {
		return types.Sheet{}, err
	}
	s, err := sheet.Decode(data.Sheet)
	if err != nil {
		return types.Sheet{}, err
	}
	return applyDocuments(s, data.Objects)
}

func readZipFile(file *zip.File) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()
	return io.ReadAll(reader)
}
