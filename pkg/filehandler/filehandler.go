// Package filehandler is the only place cmd/jpegconceal touches the
// filesystem: reading a cover, writing an embedded result, and listing a
// directory's JPEGs for batch mode. DetectFileFormat names a file's image
// format by extension or content sniffing; cmd/jpegconceal does not call
// it, so a non-JPEG cover surfaces only as a decode failure.
package filehandler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	// Registered purely for side effects with the image package's format
	// registry. DetectFileFormat does not consult that registry; it decides
	// by extension and http.DetectContentType alone.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

const maxCoverSize = 100 * 1024 * 1024 // 100MB.

// SupportedImageFormats maps file extensions to their canonical format name.
var SupportedImageFormats = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".gif":  "gif",
}

// DetectFileFormat trusts the extension when it recognizes one, otherwise
// sniffs the first 512 bytes.
func DetectFileFormat(filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if format, ok := SupportedImageFormats[ext]; ok {
		return format, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buffer := make([]byte, 512)
	_, err = file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	contentType := http.DetectContentType(buffer)
	switch {
	case strings.Contains(contentType, "image/jpeg"):
		return "jpeg", nil
	case strings.Contains(contentType, "image/png"):
		return "png", nil
	case strings.Contains(contentType, "image/bmp"):
		return "bmp", nil
	case strings.Contains(contentType, "image/tiff"):
		return "tiff", nil
	case strings.Contains(contentType, "image/gif"):
		return "gif", nil
	default:
		return "", fmt.Errorf("unrecognized file format: %s", contentType)
	}
}

// ReadFileBytes loads a cover into memory whole; jpegcoef.Decode needs the
// entire byte stream up front anyway, so there is no point streaming it.
func ReadFileBytes(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if info.Size() > maxCoverSize {
		return nil, fmt.Errorf("file too large (max %dMB)", maxCoverSize/(1024*1024))
	}

	content := make([]byte, info.Size())
	if _, err := io.ReadFull(file, content); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return content, nil
}

// SaveFile writes data to filePath, creating any missing parent directory.
func SaveFile(data []byte, filePath string) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	return nil
}

// FilesInDirectory lists files under dirPath matching one of extensions
// (all files if extensions is empty), used by the CLI's batch mode.
func FilesInDirectory(dirPath string, extensions []string) ([]string, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dirPath)
	}

	var files []string
	err = filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if len(extensions) == 0 {
			files = append(files, path)
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, valid := range extensions {
			if ext == valid {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	return files, nil
}
