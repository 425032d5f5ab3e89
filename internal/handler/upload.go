package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"Vidtube/internal/apperror"
	"Vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// saveUpload 把multipart里的文件存到本地临时目录，返回路径；字段没传返回空字符串
func saveUpload(c *gin.Context, dir, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", apperror.New(http.StatusRequestEntityTooLarge, "Request body too large")
		}
		return "", apperror.BadRequest("Invalid " + field + " file").Wrap(err)
	}
	// 文件名用uuid，原始文件名只取扩展名，防止路径穿越
	ext := strings.ToLower(filepath.Ext(file.Filename))
	path := filepath.Join(dir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", apperror.Internal(err)
	}
	return path, nil
}

// saveUploads 依次保存多个字段，任何一个失败都把已经存下的删掉
func saveUploads(c *gin.Context, dir string, fields ...string) ([]string, error) {
	paths := make([]string, 0, len(fields))
	for _, field := range fields {
		path, err := saveUpload(c, dir, field)
		if err != nil {
			removeTemp(paths...)
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// removeTemp 上传器成功时已经删过了，这里兜底提前返回的情况
func removeTemp(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Log.WithError(err).WithField("path", p).Warn("删除临时文件失败")
		}
	}
}
