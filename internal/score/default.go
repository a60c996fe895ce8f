package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"log"
	"sort"

	"git.lost.host/meutraa/eotd/internal/game"
	_ "github.com/mattn/go-sqlite3"
)

type DefaultScorer struct {
	db *sql.DB
}

type InputsCompact struct {
	Lane  game.Lane
	Times []float64
}

func compactInputs(inputs *[]game.Input) []InputsCompact {
	laneCount := 0
	for _, i := range *inputs {
		if int(i.Lane) >= laneCount {
			laneCount = int(i.Lane) + 1
		}
	}
	ins := make([]InputsCompact, laneCount)
	for _, i := range *inputs {
		ins[i.Lane].Lane = i.Lane // Repeated but it does not matter
		ins[i.Lane].Times = append(ins[i.Lane].Times, i.Ms)
	}
	return ins
}

func uncompactInputs(inputs []InputsCompact) *[]game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for _, t := range i.Times {
			ins = append(ins, game.Input{Lane: i.Lane, Ms: t})
		}
	}
	return &ins
}

func (s *DefaultScorer) Init() error {
	db, err := sql.Open("sqlite3", "./scores.db")
	if nil != err {
		return err
	}

	initStatement := `
	create table if not exists scores
	  (
		  id integer not null primary key,
		  sum text,
		  inputs bytearray
	  );
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		return err
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultScorer) hashChart(c *game.Chart) string {
	sum := sha256.Sum256([]byte(c.Course.Section))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// BaseScore spreads a million points over the drummable notes, rounded up
// to the next ten.
func (s *DefaultScorer) BaseScore(c *game.Chart) int {
	if c.TotalNotes == 0 {
		return 0
	}
	return (1000000/c.TotalNotes + 9) / 10 * 10
}

func (s *DefaultScorer) Save(c *game.Chart, inputs *[]game.Input) {
	data, err := json.Marshal(compactInputs(inputs))
	if nil != err {
		log.Println("unable to marshal inputs", err)
		return
	}
	_, err = s.db.Exec("insert into scores(sum, inputs) values(?, ?)", s.hashChart(c), data)
	if nil != err {
		log.Println("unable to save score", err)
		return
	}
}

func (s *DefaultScorer) Load(c *game.Chart) []History {
	histories := []History{}
	rows, err := s.db.Query("select sum, inputs from scores where sum = ?", s.hashChart(c))
	if nil != err && err != sql.ErrNoRows {
		log.Println("unable to load scores", err)
		return histories
	}
	defer rows.Close()
	for rows.Next() {
		var sum string
		var data []byte
		rows.Scan(&sum, &data)
		var ns []InputsCompact
		err := json.Unmarshal(data, &ns)
		if nil != err {
			log.Println("unable to unmarshal input history")
			continue
		}
		histories = append(histories, History{
			Sum:    sum,
			Inputs: uncompactInputs(ns),
		})
	}
	return histories
}

// Replay rebuilds a playthrough from a saved hit log on a fresh chart
// copy. Inputs are applied in time order with the queues advanced to each
// hit, so the result matches what the live run produced.
func (s *DefaultScorer) Replay(c *game.Chart, history *History, windows game.Windows, lookahead float64) Result {
	inputs := make([]game.Input, len(*history.Inputs))
	copy(inputs, *history.Inputs)
	sort.SliceStable(inputs, func(i, j int) bool { return inputs[i].Ms < inputs[j].Ms })

	p := game.NewPlayer(c, windows, lookahead, s.BaseScore(c))
	for _, in := range inputs {
		p.Update(in.Ms)
		p.Judge(in.Lane, in.Ms)
	}
	p.Update(p.EndMs() + windows.Bad + 1)
	return Summarize(p)
}

func Summarize(p *game.Player) Result {
	return Result{
		Score:    p.Score,
		Goods:    p.Goods,
		Oks:      p.Oks,
		Bads:     p.Bads,
		Misses:   p.Misses,
		MaxCombo: p.MaxCombo,
		RollHits: p.RollHits,
		Gauge:    p.Gauge.Length,
		Cleared:  p.Gauge.Cleared(),
	}
}
