package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
)

const (
	MagicHeader string = `SDCR` // 4 байта
	Version1    uint32 = 1

	maxResultLen   = 255
	maxPayloadLen  = 65535
	maxActionCount = 1 << 20
)

// RecordFileHeader - точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком: тут нет слайсов и строк,
// только массивы и числа.
type RecordFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	Rounds      int32   // 4 байта
	ResultLen   uint8   // 1 байт
	ActionCount int32   // 4 байта
}

// ActionHeader - заголовок каждой записи действия.
type ActionHeader struct {
	Round      int32  // 4
	Source     int32  // 4
	ActionType uint8  // 1
	PayloadLen uint16 // 2
}

type RecordService struct {
	SaveDir string
}

func NewRecordService(dir string) *RecordService {
	// Создаем папку если нет
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &RecordService{SaveDir: dir}
}

func (s *RecordService) Save(record *domain.CombatRecord) (string, error) {
	filename := fmt.Sprintf("combat_%d_%d.sdcr", record.Seed, record.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := writeBinary(f, record); err != nil {
		return "", err
	}
	return path, nil
}

func writeBinary(w io.Writer, rec *domain.CombatRecord) error {
	result := []byte(rec.Result)
	if len(result) > maxResultLen {
		return fmt.Errorf("result too long: %d", len(result))
	}

	// 1. Глобальный заголовок одной командой
	header := RecordFileHeader{
		Version:     Version1,
		Seed:        rec.Seed,
		Timestamp:   rec.Timestamp,
		Rounds:      int32(rec.Rounds),
		ResultLen:   uint8(len(result)),
		ActionCount: int32(len(rec.Actions)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(result); err != nil {
		return err
	}

	// 2. Действия
	for _, act := range rec.Actions {
		payloadLen := len(act.Payload)
		if payloadLen > maxPayloadLen {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		actHeader := ActionHeader{
			Round:      int32(act.Round),
			Source:     int32(act.Source),
			ActionType: uint8(act.Type),
			PayloadLen: uint16(payloadLen),
		}

		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
