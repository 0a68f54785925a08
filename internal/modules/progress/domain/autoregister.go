package domain

// Award is the outcome of one auto-registration transition.
type Award struct {
	Kind      Kind
	Upgrade   bool
	Index     int
	Entry     Entry
	ExpDelta  int
	DanoDelta int
}

// Register advances the auto-registration state machine for the focus
// seconds accumulated so far and applies at most one award to s.
//
//	none  -> brief  at BriefThreshold: append a mini entry, keep it open
//	brief -> deep   at DeepThreshold: upgrade the open entry in place
//	none  -> deep   at DeepThreshold: append a deep entry
//
// A brief state whose open entry is gone falls back to appending a deep
// entry, as if the brief check had been skipped.
//
// deep is terminal until Forget or Reset rewinds the state to none.
func Register(s *ProgressState) (Award, bool) {
	elapsed := s.SessionFocusSec
	switch s.AutoRegisteredFocus {
	case AutoNone:
		if elapsed >= DeepThreshold {
			return appendAward(s, KindDeep), true
		}
		if elapsed >= BriefThreshold {
			return appendAward(s, KindMini), true
		}
	case AutoBrief:
		if elapsed >= DeepThreshold {
			if award, ok := upgradeAward(s); ok {
				return award, true
			}
			return appendAward(s, KindDeep), true
		}
	}
	return Award{}, false
}

func appendAward(s *ProgressState, kind Kind) Award {
	entry := Entry{Exp: ExpFor(kind), Dano: ScaledDamage(*s, kind), Tipo: kind}
	idx := s.History.Append(entry)
	s.ExpTotal += entry.Exp
	s.DanoTotal += entry.Dano
	if kind == KindMini {
		s.AutoRegisteredFocus = AutoBrief
		open := idx
		s.AutoLastIdxFocus = &open
	} else {
		s.AutoRegisteredFocus = AutoDeep
		s.AutoLastIdxFocus = nil
	}
	return Award{Kind: kind, Index: idx, Entry: entry, ExpDelta: entry.Exp, DanoDelta: entry.Dano}
}

// upgradeAward rewrites the open brief entry as deep, recomputing both
// damages at the current level. It reports false when there is no open
// brief entry to rewrite.
func upgradeAward(s *ProgressState) (Award, bool) {
	if s.AutoLastIdxFocus == nil {
		return Award{}, false
	}
	idx := *s.AutoLastIdxFocus
	deep := ScaledDamage(*s, KindDeep)
	entry := Entry{Exp: ExpDeep, Dano: deep, Tipo: KindDeep}
	if err := s.History.Upgrade(idx, entry); err != nil {
		return Award{}, false
	}
	award := Award{
		Kind:      KindDeep,
		Upgrade:   true,
		Index:     idx,
		Entry:     entry,
		ExpDelta:  ExpDeep - ExpMini,
		DanoDelta: deep - ScaledDamage(*s, KindMini),
	}
	s.ExpTotal += award.ExpDelta
	s.DanoTotal += award.DanoDelta
	s.AutoRegisteredFocus = AutoDeep
	s.AutoLastIdxFocus = nil
	return award, true
}
