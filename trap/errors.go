package trap

import "github.com/MaiRat/WinDOS-sub002/errs"

var (
	errBadVector = errs.BadVector
	errNull      = errs.Null
)

func newErr(op string, kind errs.Kind) error {
	return errs.New(op, kind)
}
