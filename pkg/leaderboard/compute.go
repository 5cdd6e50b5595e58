// Package leaderboard computes fastest and optimal laps per track and driver
// from stored laps. The computations are pure, Service adds loading and caching.
package leaderboard

import (
	"cmp"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/accstats/pkg/lookup"
	"github.com/mpapenbr/accstats/pkg/model"
)

type (
	lapData struct {
		id          int64
		track       string
		sessionType model.SessionType
		timestamp   time.Time
		carModel    int
		ballastKg   *int
		driver      model.Driver
		time        time.Duration
		valid       bool
		splits      []time.Duration
	}
	// driverStats holds the figures of one driver on one track
	driverStats struct {
		driver      model.Driver
		fastest     *lapData
		bestSectors []time.Duration
		valid       int
		total       int
	}
	trackData struct {
		name string
		laps []*lapData
		// by driver id, in order of first appearance
		drivers     map[int64]*driverStats
		driverOrder []int64
		fastest     *lapData
		bestSectors []time.Duration
		latest      time.Time
	}
)

// groupLaps collects the records of each lap. Laps keep the order of their
// first record, splits are ordered by sector.
func groupLaps(records []model.LapRecord) []*lapData {
	type split struct {
		sector int
		time   time.Duration
	}
	byID := map[int64]*lapData{}
	splits := map[int64][]split{}
	ret := []*lapData{}
	for i := range records {
		r := &records[i]
		l, ok := byID[r.LapID]
		if !ok {
			l = &lapData{
				id:          r.LapID,
				track:       r.Track,
				sessionType: r.SessionType,
				timestamp:   r.Timestamp,
				carModel:    r.CarModel,
				ballastKg:   r.BallastKg,
				driver:      r.Driver,
				time:        r.Time,
				valid:       r.Valid,
			}
			byID[r.LapID] = l
			ret = append(ret, l)
		}
		if r.Sector > 0 {
			splits[r.LapID] = append(splits[r.LapID], split{r.Sector, r.SectorTime})
		}
	}
	for _, l := range ret {
		s := splits[l.id]
		slices.SortFunc(s, func(a, b split) int { return cmp.Compare(a.sector, b.sector) })
		l.splits = lo.Map(s, func(item split, _ int) time.Duration { return item.time })
	}
	return ret
}

// foldMin returns the element-wise minimum of acc and other. Where one of
// them is longer its values are carried over.
func foldMin(acc, other []time.Duration) []time.Duration {
	ret := make([]time.Duration, max(len(acc), len(other)))
	for i := range ret {
		switch {
		case i >= len(acc):
			ret[i] = other[i]
		case i >= len(other):
			ret[i] = acc[i]
		default:
			ret[i] = min(acc[i], other[i])
		}
	}
	return ret
}

func sum(d []time.Duration) time.Duration {
	return lo.Sum(d)
}

// faster reports whether a beats b as fastest lap. Ties go to the earlier
// session, then to the lower lap id.
func faster(a, b *lapData) bool {
	if b == nil {
		return true
	}
	if a.time != b.time {
		return a.time < b.time
	}
	if !a.timestamp.Equal(b.timestamp) {
		return a.timestamp.Before(b.timestamp)
	}
	return a.id < b.id
}

// collectTracks groups laps by track and computes the per driver and per
// track best values. Only valid laps take part in fastest and best sector
// computations.
func collectTracks(laps []*lapData) []*trackData {
	byName := map[string]*trackData{}
	ret := []*trackData{}
	for _, l := range laps {
		t, ok := byName[l.track]
		if !ok {
			t = &trackData{name: l.track, drivers: map[int64]*driverStats{}}
			byName[l.track] = t
			ret = append(ret, t)
		}
		t.laps = append(t.laps, l)
		ds, ok := t.drivers[l.driver.ID]
		if !ok {
			ds = &driverStats{driver: l.driver}
			t.drivers[l.driver.ID] = ds
			t.driverOrder = append(t.driverOrder, l.driver.ID)
		}
		ds.total++
		if !l.valid {
			continue
		}
		ds.valid++
		ds.bestSectors = foldMin(ds.bestSectors, l.splits)
		if faster(l, ds.fastest) {
			ds.fastest = l
		}
		if faster(l, t.fastest) {
			t.fastest = l
		}
	}
	for _, t := range ret {
		for _, id := range t.driverOrder {
			t.bestSectors = foldMin(t.bestSectors, t.drivers[id].bestSectors)
		}
	}
	return ret
}

// personalOptimal is the sum of the best sectors. If the fastest lap consists
// of exactly these sectors its recorded time is used, the sum may differ by
// rounding.
func personalOptimal(ds *driverStats) time.Duration {
	if slices.Equal(ds.fastest.splits, ds.bestSectors) {
		return ds.fastest.time
	}
	return sum(ds.bestSectors)
}

func tag(d, trackBest, personalBest time.Duration) Tag {
	switch d {
	case trackBest:
		return TagPurple
	case personalBest:
		return TagGreen
	default:
		return TagNone
	}
}

// tagSectors tags each sector against the track and personal best vectors.
// Sectors without a counterpart in a vector are not compared against it.
func tagSectors(sectors, trackBest, personalBest []time.Duration) []Timing {
	ret := make([]Timing, len(sectors))
	for i, s := range sectors {
		ret[i] = Timing{Time: s}
		switch {
		case i < len(trackBest) && s == trackBest[i]:
			ret[i].Tag = TagPurple
		case i < len(personalBest) && s == personalBest[i]:
			ret[i].Tag = TagGreen
		}
	}
	return ret
}

// Compute creates the leaderboard of all tracks contained in records. Drivers
// without a valid lap on a track get no row there, tracks without any valid
// lap are omitted.
func Compute(records []model.LapRecord) *Leaderboard {
	ret := &Leaderboard{Tracks: []*Track{}}
	for _, t := range collectTracks(groupLaps(records)) {
		if t.fastest == nil {
			continue
		}
		ret.Tracks = append(ret.Tracks, computeTrack(t))
	}
	slices.SortStableFunc(ret.Tracks, func(a, b *Track) int {
		if c := b.Latest.Compare(a.Latest); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return ret
}

func computeTrack(t *trackData) *Track {
	ret := &Track{
		Name:        t.name,
		DisplayName: lookup.TrackDisplayName(t.name),
		BestSectors: t.bestSectors,
		FastestLap:  t.fastest.time,
		OptimalLap:  sum(t.bestSectors),
		Rows:        []*Row{},
	}
	for _, id := range t.driverOrder {
		ds := t.drivers[id]
		if ds.fastest == nil {
			continue
		}
		f := ds.fastest
		ret.Rows = append(ret.Rows, &Row{
			Driver:      ds.driver,
			Country:     lookup.CountryName(ds.driver.Nationality),
			Flag:        lookup.FlagCode(ds.driver.Nationality),
			LapID:       f.id,
			SessionType: f.sessionType,
			Timestamp:   f.timestamp,
			Car:         lookup.CarModelName(f.carModel),
			BallastKg:   f.ballastKg,
			Lap:         Timing{Time: f.time},
			Optimal:     Timing{Time: personalOptimal(ds)},
			Sectors:     tagSectors(f.splits, t.bestSectors, ds.bestSectors),
			BestSectors: tagSectors(ds.bestSectors, t.bestSectors, ds.bestSectors),
			ValidLaps:   ds.valid,
			TotalLaps:   ds.total,
		})
		if f.timestamp.After(ret.Latest) {
			ret.Latest = f.timestamp
		}
	}
	slices.SortStableFunc(ret.Rows, func(a, b *Row) int {
		if c := cmp.Compare(a.Lap.Time, b.Lap.Time); c != 0 {
			return c
		}
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.LapID, b.LapID)
	})

	bestOptimal := lo.MinBy(ret.Rows, func(a, b *Row) bool {
		return a.Optimal.Time < b.Optimal.Time
	}).Optimal.Time
	for i, row := range ret.Rows {
		// a row shows the driver's own best values, those are green unless purple
		row.Lap.Tag = tag(row.Lap.Time, ret.FastestLap, row.Lap.Time)
		row.Optimal.Tag = tag(row.Optimal.Time, bestOptimal, row.Optimal.Time)
		if i > 0 {
			gap := row.Lap.Time - ret.Rows[0].Lap.Time
			interval := row.Lap.Time - ret.Rows[i-1].Lap.Time
			row.Gap = &gap
			row.Interval = &interval
		}
	}
	return ret
}

// ComputeDriver creates the view of a single driver. records must contain the
// laps of all drivers on the tracks of interest, they provide the track best
// values. Returns nil if the driver has no laps in records.
func ComputeDriver(driverID int64, records []model.LapRecord) *DriverView {
	var ret *DriverView
	for _, t := range collectTracks(groupLaps(records)) {
		ds, ok := t.drivers[driverID]
		if !ok {
			continue
		}
		if ret == nil {
			ret = &DriverView{
				Driver:  ds.driver,
				Country: lookup.CountryName(ds.driver.Nationality),
				Flag:    lookup.FlagCode(ds.driver.Nationality),
				Tracks:  []*DriverTrack{},
			}
		}
		ret.ValidLaps += ds.valid
		ret.TotalLaps += ds.total
		ret.Tracks = append(ret.Tracks, computeDriverTrack(t, ds))
	}
	if ret == nil {
		return nil
	}
	latest := func(dt *DriverTrack) time.Time {
		return lo.MaxBy(dt.Laps, func(a, b *DriverLap) bool {
			return a.Timestamp.After(b.Timestamp)
		}).Timestamp
	}
	slices.SortStableFunc(ret.Tracks, func(a, b *DriverTrack) int {
		if c := latest(b).Compare(latest(a)); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return ret
}

func computeDriverTrack(t *trackData, ds *driverStats) *DriverTrack {
	ret := &DriverTrack{
		Name:        t.name,
		DisplayName: lookup.TrackDisplayName(t.name),
		ValidLaps:   ds.valid,
		TotalLaps:   ds.total,
		Laps:        []*DriverLap{},
	}
	for _, l := range t.laps {
		if l.driver.ID != ds.driver.ID {
			continue
		}
		dl := &DriverLap{
			LapID:       l.id,
			SessionType: l.sessionType,
			Timestamp:   l.timestamp,
			Car:         lookup.CarModelName(l.carModel),
			BallastKg:   l.ballastKg,
			Valid:       l.valid,
			Lap:         Timing{Time: l.time},
		}
		if l.valid {
			dl.Lap.Tag = tag(l.time, t.fastest.time, ds.fastest.time)
			dl.Sectors = tagSectors(l.splits, t.bestSectors, ds.bestSectors)
		} else {
			dl.Sectors = tagSectors(l.splits, nil, nil)
		}
		ret.Laps = append(ret.Laps, dl)
	}
	slices.SortStableFunc(ret.Laps, func(a, b *DriverLap) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.LapID, b.LapID)
	})
	return ret
}
