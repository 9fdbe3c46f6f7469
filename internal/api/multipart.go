package api

import (
	"bufio"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/haierkeys/bitshared-cli/internal/dto"
	"github.com/haierkeys/bitshared-cli/pkg/fileurl"
	"github.com/pkg/errors"
)

const contentTypeText = "text/plain; charset=utf-8"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// formField 多部分表单的文本字段
type formField struct {
	name  string
	value string
}

// multipartBody streams fields then files through a pipe, so large uploads
// are never buffered in memory. Files with an empty name get file_<uuid>,
// an empty mime type is inferred from the name and the first 512 bytes.
func (c *Client) multipartBody(fields []formField, fileField string, files []dto.FilePart) (io.Reader, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeMultipart(mw, c, fields, fileField, files)
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	return pr, mw.FormDataContentType()
}

func writeMultipart(mw *multipart.Writer, c *Client, fields []formField, fileField string, files []dto.FilePart) error {
	for _, f := range fields {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"`, quoteEscaper.Replace(f.name)))
		h.Set("Content-Type", contentTypeText)
		w, err := mw.CreatePart(h)
		if err != nil {
			return errors.Wrap(err, "multipart field")
		}
		if _, err := io.WriteString(w, f.value); err != nil {
			return errors.Wrap(err, "multipart field")
		}
	}

	for _, file := range files {
		if file.Reader == nil {
			continue
		}
		name := fileurl.GetFileNameOrRandom(file.FileName)

		br := bufio.NewReaderSize(file.Reader, 512)
		mimeType := file.MimeType
		if mimeType == "" {
			head, _ := br.Peek(512)
			mimeType = fileurl.DetectMimeType(name, head)
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(fileField), quoteEscaper.Replace(name)))
		h.Set("Content-Type", mimeType)
		w, err := mw.CreatePart(h)
		if err != nil {
			return errors.Wrap(err, "multipart file")
		}
		if _, err := io.Copy(w, c.limit(br)); err != nil {
			return errors.Wrapf(err, "multipart file %s", name)
		}
	}
	return nil
}
