package main

import (
	"strconv"
)

func TestInstall(c Config) error {

	index, err := Create(c.Base, "indexes", JSON{"buckets": c.Buckets})
	if err != nil {
		return err
	}

	Run(c, "install", c.Base+"/v1/indexes/"+index+":install", func(n int64) JSON {
		return JSON{
			"name":       "key-" + strconv.FormatInt(n, 10),
			"definition": strconv.FormatInt(n*n, 10),
		}
	})
	return nil
}
