package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
)

func (s *RecordService) Load(path string) (*domain.CombatRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

func readBinary(r io.Reader) (*domain.CombatRecord, error) {
	// 1. Заголовок целиком
	var header RecordFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	// Заголовку не доверяем: счетчик из битого файла не должен
	// ронять процесс или выедать память
	if header.ActionCount < 0 || header.ActionCount > maxActionCount {
		return nil, fmt.Errorf("implausible action count: %d", header.ActionCount)
	}

	rec := &domain.CombatRecord{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Rounds:    int(header.Rounds),
		Actions:   make([]domain.RecordedAction, header.ActionCount),
	}

	if header.ResultLen > 0 {
		buf := make([]byte, header.ResultLen)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("failed to read result: %w", err)
		}
		rec.Result = string(buf)
	}

	// 2. Действия
	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, err
		}

		act := domain.RecordedAction{
			Round:  int(ah.Round),
			Source: domain.EntityID(ah.Source),
			Type:   domain.ActionType(ah.ActionType),
		}

		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, err
			}
		}

		rec.Actions[i] = act
	}

	return rec, nil
}
