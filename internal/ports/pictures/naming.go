package pictures

import (
	"fmt"
	"strings"

	"github.com/spaolacci/murmur3"
)

// FileName deriva un nombre de archivo determinístico a partir de la URL
// de origen. La extensión sale del Content-Type declarado: png => .png,
// cualquier otra cosa => .jpg.
func FileName(sourceURL, contentType string) string {
	ext := ".jpg"
	if strings.Contains(strings.ToLower(contentType), "png") {
		ext = ".png"
	}
	return fmt.Sprintf("pet_%d%s", murmur3.Sum64([]byte(sourceURL)), ext)
}

// ContentTypeFor adivina el Content-Type para servir un archivo guardado.
func ContentTypeFor(fileName string) string {
	if strings.HasSuffix(strings.ToLower(fileName), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
