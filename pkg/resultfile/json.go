package resultfile

// json shapes of the files written by the server. Only the attributes we
// process are declared.
type (
	sessionJSON struct {
		SessionType   string            `json:"sessionType"`
		TrackName     string            `json:"trackName"`
		ServerName    string            `json:"serverName"`
		SessionResult sessionResultJSON `json:"sessionResult"`
		Laps          []lapJSON         `json:"laps"`
	}
	sessionResultJSON struct {
		IsWetSession     int                   `json:"isWetSession"`
		LeaderBoardLines []leaderBoardLineJSON `json:"leaderBoardLines"`
	}
	leaderBoardLineJSON struct {
		Car carJSON `json:"car"`
	}
	carJSON struct {
		CarID       int          `json:"carId"`
		RaceNumber  int          `json:"raceNumber"`
		CarModel    int          `json:"carModel"`
		CupCategory int          `json:"cupCategory"`
		CarGroup    string       `json:"carGroup"`
		TeamName    string       `json:"teamName"`
		Drivers     []driverJSON `json:"drivers"`
		BallastKg   *int         `json:"ballastKg"`
	}
	driverJSON struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		ShortName string `json:"shortName"`
		PlayerID  string `json:"playerId"`
	}
	lapJSON struct {
		CarID          int     `json:"carId"`
		DriverIndex    int     `json:"driverIndex"`
		Laptime        int64   `json:"laptime"`
		IsValidForBest bool    `json:"isValidForBest"`
		Splits         []int64 `json:"splits"`
	}

	entryListJSON struct {
		Entries []entryJSON `json:"entries"`
	}
	entryJSON struct {
		Drivers []entryDriverJSON `json:"drivers"`
	}
	entryDriverJSON struct {
		FirstName   string  `json:"firstName"`
		LastName    string  `json:"lastName"`
		ShortName   string  `json:"shortName"`
		NickName    *string `json:"nickName"`
		PlayerID    string  `json:"playerID"`
		Nationality *int    `json:"nationality"`
	}
)
