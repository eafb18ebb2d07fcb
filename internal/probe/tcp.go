package probe

import (
	"context"
	"net"

	"github.com/CoreMedia/joala-sub001/pkg/condition"
	"github.com/CoreMedia/joala-sub001/pkg/description"
)

type tcpExpression struct {
	dialer  *net.Dialer
	address string
}

// TCP creates an expression that opens and closes a connection to address.
// It yields the remote address; dial failures are recoverable.
func TCP(dialer *net.Dialer, address string) condition.Expression[string] {
	if dialer == nil {
		dialer = &net.Dialer{}
	}
	return &tcpExpression{dialer: dialer, address: address}
}

func (e *tcpExpression) Get(ctx context.Context) (string, error) {
	conn, err := e.dialer.DialContext(ctx, "tcp", e.address)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", condition.WrapEvaluationError(err, "connect %s", e.address)
	}
	defer conn.Close()
	return conn.RemoteAddr().String(), nil
}

func (e *tcpExpression) DescribeTo(d description.Description) {
	d.AppendText("tcp://" + e.address)
}
