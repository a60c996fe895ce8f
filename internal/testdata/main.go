package testdata

import (
	"io/ioutil"
	"os"

	"git.lost.host/meutraa/eotd/internal/game"
	"git.lost.host/meutraa/eotd/internal/parser"
)

const data = `TITLE:test song
BPM:120
OFFSET:0
COURSE:Oni
LEVEL:8
BALLOON:3,5

#START
1122,
3040,
#SCROLL 1.5
5000,
0008,
#BPMCHANGE 180
1111,
7000,
0008,
,
#MEASURE 2/4
11,
#END
`

// GetChart parses the embedded chart through the default parser.
func GetChart() (*game.Chart, error) {
	f, err := ioutil.TempFile("", "eotd-*.tja")
	if nil != err {
		return nil, err
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(data); nil != err {
		f.Close()
		return nil, err
	}
	if err := f.Close(); nil != err {
		return nil, err
	}

	psr := &parser.DefaultParser{}
	charts, err := psr.Parse(f.Name())
	if nil != err {
		return nil, err
	}
	return charts[0], nil
}
