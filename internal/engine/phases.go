package engine

import (
	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/systems"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/logger"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// phaseTable - диспетчер фаз. Порядок фиксирован, фазы не пропускаются
// и не повторяются внутри раунда.
var phaseTable = [domain.PhaseCount]func(*Combat){
	domain.PhasePreparation:      (*Combat).phasePreparation,
	domain.PhaseDivineInvocation: (*Combat).phaseDivineInvocation,
	domain.PhaseSoulPreparation:  (*Combat).phaseSoulPreparation,
	domain.PhaseTargeting:        (*Combat).phaseTargeting,
	domain.PhaseInitiativeRoll:   (*Combat).phaseInitiativeRoll,
	domain.PhasePassage:          (*Combat).phasePassage,
	domain.PhaseAction:           (*Combat).phaseAction,
	domain.PhaseJudgment:         (*Combat).phaseJudgment,
	domain.PhaseDamageResolution: (*Combat).phaseDamageResolution,
	domain.PhaseManifestation:    (*Combat).phaseManifestation,
	domain.PhaseAfterlife:        (*Combat).phaseAfterlife,
	domain.PhaseBalance:          (*Combat).phaseBalance,
	domain.PhaseCleanup:          (*Combat).phaseCleanup,
}

// --- ФАЗА 1: ПОДГОТОВКА ---

// Сброс бюджетов действий и срабатывание эффектов начала хода.
// Сбой одного эффекта деактивирует его, остальные продолжают работать.
func (c *Combat) phasePreparation() {
	c.Roster.ForEach(func(e *domain.Entity) {
		if !e.IsAlive() {
			return
		}
		e.ActionsLeft = c.Config.ActionBudget
		c.fireEffects(e, domain.TimingStartOfTurn)
	})
}

// fireEffects выполняет прикрепленные эффекты с указанным таймингом.
// Длительность списывается за срабатывание, не за раунд.
func (c *Combat) fireEffects(e *domain.Entity, timing domain.EffectTiming) {
	for _, ef := range e.Effects {
		if !ef.Active || ef.Timing != timing {
			continue
		}
		if err := c.runEffect(e, ef); err != nil {
			ef.Active = false
			logger.Log.WithFields(logrus.Fields{
				"combat_id": c.ID,
				"entity":    e.Name,
				"effect":    ef.Name,
			}).WithError(err).Warn("Effect deactivated after failure")
			continue
		}
		if ef.Tick() {
			ef.Active = false
		}
	}
}

// runEffect исполняет один эффект, превращая панику в ошибку.
func (c *Combat) runEffect(e *domain.Entity, ef *domain.Effect) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Wrapf(domain.ErrEffectExecution, "effect %s panicked: %v", ef.Name, r)
		}
	}()

	switch ef.Kind {
	case domain.EffectDamage:
		e.Stats.TakeDamage(ef.Amount * ef.Stacks)
	case domain.EffectHeal:
		e.Stats.Heal(ef.Amount * ef.Stacks)
	case domain.EffectStatMod:
		// Модификаторы статов пассивны: учитываются в Effective*-геттерах
	}
	return nil
}

// --- ФАЗА 2: БОЖЕСТВЕННЫЙ ПРИЗЫВ ---

// Сначала истекают старые вмешательства, потом бросаем на новые.
// Повторное вмешательство того же бога обновляет длительность.
func (c *Combat) phaseDivineInvocation() {
	for _, god := range systems.DecayInterventions(c.Interventions) {
		c.emit(domain.EventInterventionExpired, map[string]interface{}{
			"god": god.String(),
		})
	}

	c.Roster.ForEach(func(e *domain.Entity) {
		if !e.IsAlive() {
			return
		}
		iv := systems.RollIntervention(e, c.Rng,
			c.Config.DivineScale, c.Config.DivineCap,
			c.Config.CurseThreshold, c.Config.InterventionDuration)
		if iv == nil {
			return
		}
		systems.ApplyIntervention(c.Interventions, iv)
		c.emit(domain.EventInterventionApplied, map[string]interface{}{
			"god":      iv.God.String(),
			"kind":     iv.Kind.String(),
			"curse":    iv.Kind.IsCurse(),
			"duration": iv.Duration,
		})
	})
}

// --- ФАЗА 3: ПОДГОТОВКА ДУШ ---

// Раненые отделяют Ба (разведка: небольшой сдвиг инициативы уже в этом
// раунде, если очередь еще жива с прошлого). Оправившиеся воссоединяются.
func (c *Combat) phaseSoulPreparation() {
	c.Roster.ForEach(func(e *domain.Entity) {
		if !e.IsAlive() || !e.Caps.SeparableSpirit {
			return
		}

		separated := e.Spirit != nil
		wounded := e.Stats.HP*domain.SpiritSeparationDen < e.Stats.MaxHP*domain.SpiritSeparationNum

		switch {
		case !separated && wounded:
			if err := systems.SeparateSpirit(e, c.Round); err != nil {
				return
			}
			c.Scheduler.Modify(e.ID, 1)
			c.emit(domain.EventSoulChanged, map[string]interface{}{
				"entityId": e.ID.String(),
				"soul":     "ba",
				"state":    "separated",
			})

		case separated && !wounded:
			if err := systems.ReuniteSpirit(e); err != nil {
				return
			}
			c.emit(domain.EventSoulChanged, map[string]interface{}{
				"entityId": e.ID.String(),
				"soul":     "ba",
				"state":    "reunited",
			})
		}
	})
}

// --- ФАЗА 4: ЦЕЛЕУКАЗАНИЕ ---

// Предвычисляем легальные наборы целей. Хендлеры действий сверяются
// именно с этими наборами; перемещение внутри раунда их не пересчитывает.
func (c *Combat) phaseTargeting() {
	c.targets = make(map[domain.EntityID]map[domain.ActionType][]domain.EntityID)

	c.Roster.ForEach(func(e *domain.Entity) {
		if !e.IsAlive() {
			return
		}
		c.targets[e.ID] = map[domain.ActionType][]domain.EntityID{
			domain.ActionAttack: systems.ValidTargets(c.Roster, e, domain.ActionAttack),
			domain.ActionCast:   systems.ValidTargets(c.Roster, e, domain.ActionCast),
			domain.ActionDefend: systems.ValidTargets(c.Roster, e, domain.ActionDefend),
		}
	})
}

// --- ФАЗА 5: БРОСОК ИНИЦИАТИВЫ ---

func (c *Combat) phaseInitiativeRoll() {
	c.Scheduler.Rebuild(c.Roster.Alive(), c.priorityFor, c.Rng)
}

// priorityFor - базовая инициатива плюс благоволение, бонус отделенного
// Ба, божественное вмешательство и активные модификаторы.
func (c *Combat) priorityFor(e *domain.Entity) int {
	p := e.Stats.Initiative + e.Stats.Favor/5
	if e.Spirit != nil {
		p += e.Spirit.InitiativeBonus
	}
	p += systems.InterventionInitiative(c.Interventions, e.God)
	for _, ef := range e.Effects {
		if ef.Active && ef.Kind == domain.EffectStatMod && ef.Stat == domain.StatInitiative {
			p += ef.Amount * ef.Stacks
		}
	}
	return p
}

// --- ФАЗА 6: ПЕРЕХОД ---

// Очередной час пути через Дуат: на нечетных раундах среда кусается,
// на четных дарит передышку. Смерть от среды фиксируется позже, в фазе
// разрешения урона.
func (c *Combat) phasePassage() {
	boon := systems.PassageBoon(c.Round)

	c.Roster.ForEach(func(e *domain.Entity) {
		if !e.IsAlive() {
			return
		}

		if boon > 0 {
			e.Stats.Heal(boon)
			return
		}

		magnitude := systems.PassageMagnitude(c.Round, c.Config.PassageBase, e.Stats.Resistance)
		magnitude += systems.CellHazard(c.Board, e)
		if magnitude <= 0 {
			return
		}
		e.Stats.TakeDamage(magnitude)
		c.emit(domain.EventDamageDealt, map[string]interface{}{
			"source": "environment",
			"target": e.ID.String(),
			"amount": magnitude,
		})
	})
}

// --- ФАЗА 7: ДЕЙСТВИЯ ---

// Сущности ходят в порядке очереди, пока у кого-то остается бюджет.
// Единственная точка ожидания движка - ход живого игрока.
func (c *Combat) phaseAction() {
	for {
		actor := c.Scheduler.Advance(c.Roster)
		if actor == nil {
			break // Очередь иссякла, фаза завершается досрочно
		}

		c.activeID = actor.ID
		if c.isHuman(actor) {
			c.humanTurn(actor)
		} else {
			c.aiTurn(actor)
		}
	}
	c.activeID = domain.NoEntity
}

// --- ФАЗА 8: СУД ---

// Личный баланс Маат судится каждый раунд. Праведные могут получить
// благословение, отступники - проклятие. Не гарантия, а бросок.
func (c *Combat) phaseJudgment() {
	c.Roster.ForEach(func(e *domain.Entity) {
		if !e.IsAlive() {
			return
		}

		verdict := systems.Judge(e.Balance, c.Config.BlessThreshold, c.Config.CurseBalance)
		if verdict == systems.VerdictNeutral {
			return
		}

		c.emit(domain.EventJudgmentPassed, map[string]interface{}{
			"entityId": e.ID.String(),
			"balance":  e.Balance,
			"blessed":  verdict == systems.VerdictBlessed,
		})

		if e.God == domain.GodNone || c.Rng.Float64() >= 0.5 {
			return
		}

		var pool []domain.InterventionKind
		if verdict == systems.VerdictBlessed {
			pool = domain.BlessingPool(e.God)
		} else {
			pool = domain.CursePool(e.God)
		}
		if len(pool) == 0 {
			return
		}

		iv := &domain.DivineIntervention{
			God:      e.God,
			Kind:     pool[c.Rng.Intn(len(pool))],
			Duration: c.Config.InterventionDuration,
		}
		systems.ApplyIntervention(c.Interventions, iv)
		c.emit(domain.EventInterventionApplied, map[string]interface{}{
			"god":      iv.God.String(),
			"kind":     iv.Kind.String(),
			"curse":    iv.Kind.IsCurse(),
			"duration": iv.Duration,
		})
	})
}

// --- ФАЗА 9: РАЗРЕШЕНИЕ УРОНА ---

// Смерти, накопленные за раунд, фиксируются здесь: срабатывают
// посмертные эффекты, душа отпускается, объявляется событие.
func (c *Combat) phaseDamageResolution() {
	c.Roster.ForEach(func(e *domain.Entity) {
		if e.Stats == nil || !e.Stats.IsDead || c.mourned[e.ID] {
			return
		}

		c.fireEffects(e, domain.TimingOnDeath)
		systems.MarkDead(e)
		c.mourned[e.ID] = true

		c.emit(domain.EventEntityDied, map[string]interface{}{
			"entityId": e.ID.String(),
			"name":     e.Name,
		})
	})
}

// --- ФАЗА 10: ПРОЯВЛЕНИЕ ---

// Тяжело раненые проявляют Ка как защитное присутствие.
func (c *Combat) phaseManifestation() {
	c.Roster.ForEach(func(e *domain.Entity) {
		if !e.IsAlive() || !e.Caps.ManifestableKa || e.Manifest != nil {
			return
		}
		if e.Stats.HP*domain.ManifestDen >= e.Stats.MaxHP*domain.ManifestNum {
			return
		}
		if err := systems.ManifestKa(e); err != nil {
			return
		}
		c.emit(domain.EventSoulChanged, map[string]interface{}{
			"entityId": e.ID.String(),
			"soul":     "ka",
			"state":    "manifested",
			"strength": e.Manifest.Strength,
		})
	})
}

// --- ФАЗА 11: ЗАГРОБНЫЙ ПЕРЕХОД ---

// Один ролл воскрешения на смерть. Провал окончателен: сущность
// покидает поле и очередь, возврата нет. После переписи - проверка
// исхода боя; само завершение происходит в фазе очистки.
func (c *Combat) phaseAfterlife() {
	c.Roster.ForEach(func(e *domain.Entity) {
		if e.Stats == nil || !e.Stats.IsDead || c.fallen[e.ID] {
			return
		}

		if systems.TryResurrect(e, c.Rng,
			c.Config.ResurrectBaseChance, c.Config.DivineScale, c.Config.ResurrectFraction) {
			delete(c.mourned, e.ID)
			c.emit(domain.EventEntityResurrected, map[string]interface{}{
				"entityId": e.ID.String(),
				"name":     e.Name,
				"hp":       e.Stats.HP,
			})
			return
		}

		c.fallen[e.ID] = true
		c.Board.Remove(e.Pos)
		c.Scheduler.Remove(e.ID)
	})

	ended, winner := systems.CompletionCheck(c.Roster, c.Round, c.Config.RoundCap)
	if !ended {
		return
	}
	c.pendingEnd = true
	if winner != nil {
		c.winner = winner.ID
		c.endReason = "victory"
	} else if len(c.Roster.Alive()) == 0 {
		c.endReason = "annihilation"
	} else {
		c.endReason = "draw"
	}
}

// --- ФАЗА 12: КОСМИЧЕСКОЕ РАВНОВЕСИЕ ---

// Сильный перекос глобального баланса мягко корректируется: всеобщее
// исцеление при избытке Маат, всеобщее истощение при избытке Исфет.
// Коррекция не убивает и не порождает вторичных коррекций.
func (c *Combat) phaseBalance() {
	nudge := c.Config.NudgeThreshold

	switch {
	case c.Balance >= nudge:
		c.Roster.ForEach(func(e *domain.Entity) {
			if e.IsAlive() {
				e.Stats.Heal(1)
			}
		})
		c.AddLog("Маат преобладает: поле боя дышит легче.", "INFO")

	case c.Balance <= -nudge:
		c.Roster.ForEach(func(e *domain.Entity) {
			if e.IsAlive() && e.Stats.HP > 1 {
				e.Stats.HP--
			}
		})
		c.AddLog("Исфет сгущается: силы покидают сражающихся.", "INFO")
	}

	c.Balance = systems.BalanceDecay(c.Balance)
}

// --- ФАЗА 13: ОЧИСТКА ---

// Срабатывают эффекты конца хода, истекают длительности, снимается
// временный мусор. Если фаза загробного перехода выставила исход,
// бой завершается здесь, на границе раунда.
func (c *Combat) phaseCleanup() {
	c.Roster.ForEach(func(e *domain.Entity) {
		c.fireEffects(e, domain.TimingEndOfTurn)
		for _, ef := range e.Effects {
			if !ef.Active {
				continue
			}
			switch ef.Timing {
			case domain.TimingStartOfTurn, domain.TimingEndOfTurn, domain.TimingOnDeath:
				// Длительность уже списана при срабатывании
			default:
				// Пассивные модификаторы живут раундами
				if ef.Tick() {
					ef.Active = false
				}
			}
		}
		e.PruneEffects()
	})

	if !c.pendingEnd {
		return
	}

	c.State = domain.StateCompleted
	payload := map[string]interface{}{"result": c.endReason}
	if c.winner != domain.NoEntity {
		payload["winner"] = c.winner.String()
	}
	c.emit(domain.EventCombatEnded, payload)

	logger.Log.WithFields(logrus.Fields{
		"combat_id": c.ID,
		"result":    c.endReason,
		"rounds":    c.Round,
	}).Info("Combat completed")
}
