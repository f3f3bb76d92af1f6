package ptrack

import (
	"io/ioutil"

	"github.com/sirupsen/logrus"
)

// Log carries debug events from the worker pool, like worker startup and
// shutdown. Discarded by default, raise the level and set an output to see
// them. Progress output itself never goes through the logger.
var Log = logrus.New()

func init() {
	Log.SetOutput(ioutil.Discard)
}
