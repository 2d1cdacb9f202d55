package server

import (
	"encoding/json"
	"net/http"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.CombatService
}

func NewDebugHandler(s *engine.CombatService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/combats", h.handleListCombats)
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/initiative", h.handleInitiative)
}

// /debug/combats - список активных боев
func (h *DebugHandler) handleListCombats(w http.ResponseWriter, r *http.Request) {
	type CombatSummary struct {
		ID       string `json:"id"`
		State    string `json:"state"`
		Phase    string `json:"phase"`
		Round    int    `json:"round"`
		Balance  int    `json:"balance"`
		Entities int    `json:"entities"`
		Alive    int    `json:"alive"`
	}

	var summary []CombatSummary
	for _, c := range h.Service.Combats() {
		c.Inspect(func() {
			summary = append(summary, CombatSummary{
				ID:       c.ID,
				State:    c.State.String(),
				Phase:    c.Phase.String(),
				Round:    c.Round,
				Balance:  c.Balance,
				Entities: c.Roster.Len(),
				Alive:    len(c.Roster.Alive()),
			})
		})
	}

	writeJSON(w, summary)
}

// /debug/entities?combat=<id> - дамп всех сущностей боя, включая скрытые статы
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	c := h.Service.GetCombat(r.URL.Query().Get("combat"))
	if c == nil {
		http.Error(w, "Combat not found", http.StatusNotFound)
		return
	}

	// Сущности сериализуем под замком: цикл фаз мутирует их параллельно
	var dump []json.RawMessage
	c.Inspect(func() {
		c.Roster.ForEach(func(e *domain.Entity) {
			if raw, err := json.Marshal(e); err == nil {
				dump = append(dump, raw)
			}
		})
	})

	writeJSON(w, dump)
}

// /debug/initiative?combat=<id> - порядок извлечения очереди инициативы
func (h *DebugHandler) handleInitiative(w http.ResponseWriter, r *http.Request) {
	c := h.Service.GetCombat(r.URL.Query().Get("combat"))
	if c == nil {
		http.Error(w, "Combat not found", http.StatusNotFound)
		return
	}

	type QueueItemView struct {
		EntityID string `json:"entityId"`
		Priority int    `json:"priority"`
		Tiebreak int    `json:"tiebreak"`
	}

	var dump []QueueItemView
	c.Inspect(func() {
		for _, item := range c.Scheduler.Snapshot() {
			dump = append(dump, QueueItemView{
				EntityID: item.EntityID.String(),
				Priority: item.Priority,
				Tiebreak: item.Tiebreak,
			})
		}
	})

	writeJSON(w, dump)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Пустой результат сериализуем как [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
