package controllers

import (
	"io"

	"github.com/gin-gonic/gin"

	"marketplace/media"
)

// formFile reads one multipart file into memory. ok is false when
// the field is absent.
func formFile(c *gin.Context, field string) (media.File, bool, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return media.File{}, false, nil
	}

	f, err := header.Open()
	if err != nil {
		return media.File{}, false, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return media.File{}, false, err
	}
	return media.File{Name: header.Filename, Data: data}, true, nil
}

// formFileUpdate builds the tagged update variant for an optional
// file field: absent field means no change; a present file together
// with the replace-id field means replace-and-destroy.
func formFileUpdate(c *gin.Context, field, replaceField string) (media.FileUpdate, error) {
	file, ok, err := formFile(c, field)
	if err != nil {
		return media.NoFile(), err
	}
	if !ok {
		return media.NoFile(), nil
	}

	if publicID := c.PostForm(replaceField); publicID != "" {
		return media.ReplaceFile(file.Name, file.Data, publicID), nil
	}
	return media.NewFile(file.Name, file.Data), nil
}
