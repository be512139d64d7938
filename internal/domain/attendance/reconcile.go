package attendance

// Reconcile applies a scan to the record already held for the same code and
// day, or builds a new one when existing is nil.
//
// An "in" only sets the check-in time when none is recorded. An "out" only
// sets the check-out time when a check-in exists. Any other combination
// leaves the record untouched and reports changed=false; this is not an
// error. A first scan of the day creates a record whose classifier is
// UnknownClassifier, even for an "out".
//
// A record opened by a lone "out" has no check-in yet, so a later "in" fills
// it and moves the status back to En cours. The check-out time is kept as is,
// even when it is earlier than the new check-in.
func Reconcile(existing *Record, ev ScanEvent) (rec Record, isNew bool, changed bool) {
	if existing == nil {
		rec = Record{
			PersonType: ev.PersonType,
			Code:       ev.Code,
			Name:       ev.Name,
			Classifier: UnknownClassifier,
			Date:       ev.Date,
		}
		if ev.Direction == DirectionIn {
			rec.TimeIn = ev.Time
			rec.Status = StatusInProgress
		} else {
			rec.TimeOut = ev.Time
			rec.Status = StatusComplete
		}
		return rec, true, true
	}

	rec = *existing
	switch {
	case ev.Direction == DirectionIn && rec.TimeIn == "":
		rec.TimeIn = ev.Time
		rec.Status = StatusInProgress
		return rec, false, true
	case ev.Direction == DirectionOut && rec.TimeIn != "":
		rec.TimeOut = ev.Time
		rec.Status = StatusComplete
		return rec, false, true
	}
	return rec, false, false
}

// CanTransition reports whether moving a record from one status to another
// follows Absent -> En cours -> Complet without going back.
func CanTransition(from, to Status) bool {
	return to.rank() >= from.rank()
}
