package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
)

type loggedGame struct {
	p1First      bool
	black, white int
	turns        int
	plays        []string
}

// AnalyzeLogFile rebuilds the summary of the games recorded in a move log
// written by StartCompVComp. Players are named p1 and p2; games cut short
// are counted as they stand.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// playerID,gameID,turn,side,play,flips,value,black,white

	games := map[string]*loggedGame{}
	var order []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "playerID" {
			continue
		}
		if len(record) != 9 {
			return nil, fmt.Errorf("bad log record: %v", record)
		}
		lg, ok := games[record[1]]
		if !ok {
			lg = &loggedGame{}
			games[record[1]] = lg
			order = append(order, record[1])
		}
		turn, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, err
		}
		black, err := strconv.Atoi(record[7])
		if err != nil {
			return nil, err
		}
		white, err := strconv.Atoi(record[8])
		if err != nil {
			return nil, err
		}
		if turn == 1 {
			// Black always moves first.
			lg.p1First = record[0] == "p1"
		}
		if turn > lg.turns {
			lg.turns, lg.black, lg.white = turn, black, white
		}
		lg.plays = append(lg.plays, record[4])
	}

	results := make([]GameResult, 0, len(order))
	for _, uid := range order {
		lg := games[uid]
		spread := lg.black - lg.white
		if !lg.p1First {
			spread = -spread
		}
		results = append(results, GameResult{
			Uid:           uid,
			Player1First:  lg.p1First,
			Player1Spread: spread,
			Turns:         lg.turns,
			Fingerprint:   xxhash.Sum64String(strings.Join(lg.plays, " ")),
		})
	}
	return Summarize("p1", "p2", results), nil
}
