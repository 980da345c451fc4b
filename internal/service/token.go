package service

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Кодек непрозрачного токена продолжения.
//
// Токен оборачивает позицию возобновления сырого скана хранилища (первичный
// ключ последней прочитанной записи) и не несёт никаких гарантий порядка.
// Формат — base64url от JSON-дескриптора; наружу отдаётся как непрозрачная
// строка, внутренности токена никто, кроме этого файла, не разбирает.
//
// Кодек отвечает только за форму: ошибка возникает на битом base64, битом
// JSON или пустом ключе. «Протухший», но корректно закодированный токен —
// забота хранилища, не кодека.

// scanPosition — дескриптор позиции возобновления скана.
type scanPosition struct {
	ID string `json:"id"`
}

// encodePageToken кодирует позицию скана в непрозрачный токен для клиента.
func encodePageToken(lastKey string) string {
	raw, _ := json.Marshal(scanPosition{ID: lastKey})

	return base64.RawURLEncoding.EncodeToString(raw)
}

// decodePageToken декодирует токен обратно в позицию скана.
func decodePageToken(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return "", err
	}

	var pos scanPosition
	if err := json.Unmarshal(raw, &pos); err != nil {
		return "", err
	}

	if pos.ID == "" {
		return "", fmt.Errorf("empty position")
	}

	return pos.ID, nil
}
