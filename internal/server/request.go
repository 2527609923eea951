package server

import (
	"fmt"
	"net/http"
	"strconv"

	"pkg.jsn.cam/randtap/pkg/generators"
	"pkg.jsn.cam/randtap/pkg/randtap"
	"pkg.jsn.cam/randtap/pkg/split"
)

type streamRequest struct {
	name  string
	src   randtap.ByteSource
	n     int64
	chunk int
}

func parseStreamRequest(r *http.Request) (*streamRequest, error) {
	q := r.URL.Query()

	name := q.Get("generator")
	if name == "" {
		return nil, fmt.Errorf("missing generator parameter")
	}
	f, err := generators.Get(name)
	if err != nil {
		return nil, err
	}

	seed, err := randtap.ParseSeed(q.Get("seed"), f.SeedWidth)
	if err != nil {
		return nil, err
	}

	nStr := q.Get("n")
	if nStr == "" {
		return nil, fmt.Errorf("missing n parameter")
	}
	n, err := strconv.ParseInt(nStr, 10, 64)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid n %q", nStr)
	}

	chunk := 0
	if c := q.Get("chunk"); c != "" {
		chunk, err = strconv.Atoi(c)
		if err != nil || chunk < 0 {
			return nil, fmt.Errorf("invalid chunk %q", c)
		}
	}

	var src randtap.ByteSource
	if idx := q.Get("split"); idx != "" {
		index, err := strconv.ParseUint(idx, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid split index %q", idx)
		}
		src, err = split.Child(name, seed, index)
		if err != nil {
			return nil, err
		}
	} else {
		src, err = f.New(seed)
		if err != nil {
			return nil, err
		}
	}

	return &streamRequest{name: name, src: src, n: n, chunk: chunk}, nil
}
