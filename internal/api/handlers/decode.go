package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxBodySize ограничение на размер тела запроса (1 MB)
const maxBodySize = 1 << 20

// DecodeJSON декодирует тело запроса в target
// Неизвестные поля считаются ошибкой клиента
func DecodeJSON(r *http.Request, target interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}

	return nil
}
