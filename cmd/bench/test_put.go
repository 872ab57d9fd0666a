package main

import (
	"strconv"
)

// TestPut is dominated by the linear key scan of the ordered map
func TestPut(c Config) error {

	m, err := Create(c.Base, "maps", JSON{})
	if err != nil {
		return err
	}

	Run(c, "put", c.Base+"/v1/maps/"+m+":put", func(n int64) JSON {
		return JSON{
			"key":   "key-" + strconv.FormatInt(n, 10),
			"value": n,
		}
	})
	return nil
}
