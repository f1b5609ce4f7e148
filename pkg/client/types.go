package client

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// FieldSchema is the metastore's description of one column.
type FieldSchema struct {
	Name    string
	Type    string
	Comment string
}

func (f *FieldSchema) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, func(id int16, typ thrift.TType) (bool, error) {
		if typ != thrift.STRING {
			return false, nil
		}
		var err error
		switch id {
		case 1:
			f.Name, err = iprot.ReadString(ctx)
		case 2:
			f.Type, err = iprot.ReadString(ctx)
		case 3:
			f.Comment, err = iprot.ReadString(ctx)
		default:
			return false, nil
		}
		return true, err
	})
}

func (f *FieldSchema) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "FieldSchema"); err != nil {
		return err
	}
	if err := writeString(ctx, oprot, "name", 1, f.Name); err != nil {
		return err
	}
	if err := writeString(ctx, oprot, "type", 2, f.Type); err != nil {
		return err
	}
	if err := writeString(ctx, oprot, "comment", 3, f.Comment); err != nil {
		return err
	}
	return writeStructEnd(ctx, oprot)
}

// MetaException is the generic exception thrown by the metastore.
type MetaException struct {
	Message string
}

func (e *MetaException) Error() string {
	return "MetaException: " + e.Message
}

func (e *MetaException) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readMessage(ctx, iprot, &e.Message)
}

func (e *MetaException) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeMessage(ctx, oprot, "MetaException", e.Message)
}

type UnknownTableException struct {
	Message string
}

func (e *UnknownTableException) Error() string {
	return "UnknownTableException: " + e.Message
}

func (e *UnknownTableException) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readMessage(ctx, iprot, &e.Message)
}

func (e *UnknownTableException) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeMessage(ctx, oprot, "UnknownTableException", e.Message)
}

type UnknownDBException struct {
	Message string
}

func (e *UnknownDBException) Error() string {
	return "UnknownDBException: " + e.Message
}

func (e *UnknownDBException) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readMessage(ctx, iprot, &e.Message)
}

func (e *UnknownDBException) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeMessage(ctx, oprot, "UnknownDBException", e.Message)
}

// tableArgs are the arguments of get_fields and get_schema.
type tableArgs struct {
	method    string
	DBName    string
	TableName string
}

func (a *tableArgs) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, func(id int16, typ thrift.TType) (bool, error) {
		if typ != thrift.STRING {
			return false, nil
		}
		var err error
		switch id {
		case 1:
			a.DBName, err = iprot.ReadString(ctx)
		case 2:
			a.TableName, err = iprot.ReadString(ctx)
		default:
			return false, nil
		}
		return true, err
	})
}

func (a *tableArgs) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, a.method+"_args"); err != nil {
		return err
	}
	if err := writeString(ctx, oprot, "db_name", 1, a.DBName); err != nil {
		return err
	}
	if err := writeString(ctx, oprot, "table_name", 2, a.TableName); err != nil {
		return err
	}
	return writeStructEnd(ctx, oprot)
}

// fieldsResult is the result of get_fields and get_schema: either the
// columns or one of the declared exceptions.
type fieldsResult struct {
	method  string
	Success []*FieldSchema
	O1      *MetaException
	O2      *UnknownTableException
	O3      *UnknownDBException
}

func (r *fieldsResult) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, func(id int16, typ thrift.TType) (bool, error) {
		switch {
		case id == 0 && typ == thrift.LIST:
			return true, r.readSuccess(ctx, iprot)
		case id == 1 && typ == thrift.STRUCT:
			r.O1 = &MetaException{}
			return true, r.O1.Read(ctx, iprot)
		case id == 2 && typ == thrift.STRUCT:
			r.O2 = &UnknownTableException{}
			return true, r.O2.Read(ctx, iprot)
		case id == 3 && typ == thrift.STRUCT:
			r.O3 = &UnknownDBException{}
			return true, r.O3.Read(ctx, iprot)
		}
		return false, nil
	})
}

func (r *fieldsResult) readSuccess(ctx context.Context, iprot thrift.TProtocol) error {
	_, size, err := iprot.ReadListBegin(ctx)
	if err != nil {
		return thrift.PrependError("error reading list begin: ", err)
	}
	r.Success = make([]*FieldSchema, 0, size)
	for range size {
		f := &FieldSchema{}
		if err := f.Read(ctx, iprot); err != nil {
			return err
		}
		r.Success = append(r.Success, f)
	}
	return iprot.ReadListEnd(ctx)
}

func (r *fieldsResult) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, r.method+"_result"); err != nil {
		return err
	}
	switch {
	case r.Success != nil:
		if err := oprot.WriteFieldBegin(ctx, "success", thrift.LIST, 0); err != nil {
			return err
		}
		if err := oprot.WriteListBegin(ctx, thrift.STRUCT, len(r.Success)); err != nil {
			return err
		}
		for _, f := range r.Success {
			if err := f.Write(ctx, oprot); err != nil {
				return err
			}
		}
		if err := oprot.WriteListEnd(ctx); err != nil {
			return err
		}
		if err := oprot.WriteFieldEnd(ctx); err != nil {
			return err
		}
	case r.O1 != nil:
		if err := writeStructField(ctx, oprot, "o1", 1, r.O1); err != nil {
			return err
		}
	case r.O2 != nil:
		if err := writeStructField(ctx, oprot, "o2", 2, r.O2); err != nil {
			return err
		}
	case r.O3 != nil:
		if err := writeStructField(ctx, oprot, "o3", 3, r.O3); err != nil {
			return err
		}
	}
	return writeStructEnd(ctx, oprot)
}

// readStruct reads a struct, handing every field to fn. Fields fn does not
// handle are skipped.
func readStruct(ctx context.Context, iprot thrift.TProtocol, fn func(id int16, typ thrift.TType) (bool, error)) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return thrift.PrependError("read struct begin error: ", err)
	}
	for {
		_, typ, id, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return thrift.PrependError(fmt.Sprintf("field %d read error: ", id), err)
		}
		if typ == thrift.STOP {
			break
		}
		handled, err := fn(id, typ)
		if err != nil {
			return thrift.PrependError(fmt.Sprintf("field %d read error: ", id), err)
		}
		if !handled {
			if err := iprot.Skip(ctx, typ); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func readMessage(ctx context.Context, iprot thrift.TProtocol, msg *string) error {
	return readStruct(ctx, iprot, func(id int16, typ thrift.TType) (bool, error) {
		if id != 1 || typ != thrift.STRING {
			return false, nil
		}
		var err error
		*msg, err = iprot.ReadString(ctx)
		return true, err
	})
}

func writeMessage(ctx context.Context, oprot thrift.TProtocol, name, msg string) error {
	if err := oprot.WriteStructBegin(ctx, name); err != nil {
		return err
	}
	if err := writeString(ctx, oprot, "message", 1, msg); err != nil {
		return err
	}
	return writeStructEnd(ctx, oprot)
}

func writeString(ctx context.Context, oprot thrift.TProtocol, name string, id int16, v string) error {
	if err := oprot.WriteFieldBegin(ctx, name, thrift.STRING, id); err != nil {
		return thrift.PrependError(fmt.Sprintf("write field begin error %d:%s: ", id, name), err)
	}
	if err := oprot.WriteString(ctx, v); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s field write error: ", name), err)
	}
	return oprot.WriteFieldEnd(ctx)
}

func writeStructField(ctx context.Context, oprot thrift.TProtocol, name string, id int16, v thrift.TStruct) error {
	if err := oprot.WriteFieldBegin(ctx, name, thrift.STRUCT, id); err != nil {
		return err
	}
	if err := v.Write(ctx, oprot); err != nil {
		return err
	}
	return oprot.WriteFieldEnd(ctx)
}

func writeStructEnd(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}
	return oprot.WriteStructEnd(ctx)
}
