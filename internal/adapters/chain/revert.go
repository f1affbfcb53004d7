package chain

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// decodeError turns node errors into domain errors. Revert data is decoded
// as Error(string), Panic(uint256) or one of the custom errors declared in
// contractABI.
func decodeError(contractABI *abi.ABI, method string, err error) error {
	if err == nil {
		return nil
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := revertData(dataErr.ErrorData()); ok {
			return newRevertError(contractABI, method, data)
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "insufficient funds"):
		return fmt.Errorf("%w: %v", domain.ErrInsufficientFunds, err)
	case strings.Contains(msg, "execution reverted"):
		// some nodes only report the reason in the message
		reason := strings.TrimSpace(strings.TrimPrefix(msg[strings.Index(msg, "execution reverted"):], "execution reverted"))
		reason = strings.TrimSpace(strings.TrimPrefix(reason, ":"))
		return &domain.RevertError{Method: method, Reason: reason}
	}
	return err
}

func revertData(raw any) ([]byte, bool) {
	switch v := raw.(type) {
	case string:
		data, err := hexutil.Decode(v)
		if err != nil {
			return nil, v == "0x"
		}
		return data, true
	case []byte:
		return v, true
	}
	return nil, false
}

func newRevertError(contractABI *abi.ABI, method string, data []byte) *domain.RevertError {
	revert := &domain.RevertError{Method: method, Data: data}
	if len(data) == 0 {
		return revert
	}

	if reason, err := abi.UnpackRevert(data); err == nil {
		revert.Reason = reason
		return revert
	}

	if len(data) < 4 {
		revert.Reason = "malformed revert data " + hexutil.Encode(data)
		return revert
	}

	if contractABI != nil {
		for _, e := range contractABI.Errors {
			if !bytes.Equal(e.ID[:4], data[:4]) {
				continue
			}
			values, err := e.Inputs.Unpack(data[4:])
			if err != nil {
				revert.Reason = e.Name
				return revert
			}
			revert.Reason = fmt.Sprintf("%s(%s)", e.Name, strings.Join(usecase.FormatValues(values), ", "))
			return revert
		}
	}

	revert.Reason = "custom error " + hexutil.Encode(data[:4])
	return revert
}
