// Copyright 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// key-tool loads sample records into a sorted store through the
// ordered key codec and scans them back, showing that byte order over
// the encoded keys equals value order over the records.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/matrixorigin/orderedkey/pkg/config"
	"github.com/matrixorigin/orderedkey/pkg/descriptor"
	"github.com/matrixorigin/orderedkey/pkg/kv"
	"github.com/matrixorigin/orderedkey/pkg/logutil"
	"github.com/matrixorigin/orderedkey/pkg/tuplecodec"
)

var configFile = flag.String("config", "", "path of the toml config file")

const (
	demoSpaceID = 7
	demoIndexID = 1
)

type demoRecord struct {
	region string
	score  int64
	name   string
}

// records are inserted out of order on purpose; the scan must return
// them sorted by (region, score, name).
var records = []demoRecord{
	{"us-west", 42, "carol"},
	{"eu-central", -7, "alice"},
	{"us-west", -100, "dave"},
	{"ap-south", 0, "bob"},
	{"us-west", 42, "bob"},
	{"eu-central", 1000, "erin"},
}

func recordShapes() []*descriptor.Shape {
	return []*descriptor.Shape{
		descriptor.String(),
		descriptor.Int64(),
		descriptor.String(),
	}
}

func openStore(params *config.Parameters) (kv.KVHandler, error) {
	if params.Store.Engine == config.EnginePebble {
		return kv.NewPebbleKV(params.Store.DataDir)
	}
	return kv.NewMemoryKV(), nil
}

func run() error {
	params, err := config.LoadParameters(*configFile)
	if err != nil {
		return err
	}
	logutil.SetupGlobalLogger(&params.Log)

	store, err := openStore(params)
	if err != nil {
		return err
	}
	defer store.Close()

	tch := tuplecodec.NewTupleCodecHandler()
	tke := tch.GetEncoder()
	tkd := tch.GetDecoder()
	shapes := recordShapes()

	for _, rec := range records {
		key := tke.EncodeKeyspacePrefix(nil, demoSpaceID, demoIndexID)
		key, err = tke.EncodeTuple(key,
			tuplecodec.NewSliceTuple(rec.region, rec.score, rec.name), shapes)
		if err != nil {
			return err
		}
		if err = store.Set(key, nil); err != nil {
			return err
		}
		logutil.Debug("stored record",
			zap.String("region", rec.region),
			zap.Int64("score", rec.score),
			zap.String("key", hex.EncodeToString(key)))
	}

	prefix := tke.EncodeKeyspacePrefix(nil, demoSpaceID, demoIndexID)
	keys, _, err := store.GetWithPrefix(prefix, 0)
	if err != nil {
		return err
	}
	logutil.Infof("scanned %d records under prefix %s",
		len(keys), hex.EncodeToString(prefix))

	for _, key := range keys {
		rest, err := tkd.SkipKeyspacePrefix(key)
		if err != nil {
			return err
		}
		_, items, err := tkd.DecodeTuple(rest, shapes)
		if err != nil {
			return err
		}
		fmt.Printf("%-12v %6v %-8v <- %s\n",
			items[0].Value, items[1].Value, items[2].Value,
			hex.EncodeToString(key))
	}
	return nil
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		logutil.Errorf("key-tool failed: %v", err)
		os.Exit(1)
	}
}
