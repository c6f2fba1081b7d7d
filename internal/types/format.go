package types

import "strings"

// Format renders a type for messages. Named cells print by name, so
// recursive types terminate.
func (in *Interner) Format(id TypeID) string {
	var sb strings.Builder
	in.format(&sb, id)
	return sb.String()
}

func (in *Interner) format(sb *strings.Builder, id TypeID) {
	if name := in.Name(id); name != "" {
		sb.WriteString(name)
		return
	}
	tt, ok := in.Lookup(id)
	if !ok {
		sb.WriteString("<invalid>")
		return
	}
	switch tt.Kind {
	case KindRecord, KindUnion:
		if tt.Kind == KindUnion {
			sb.WriteString("union")
		}
		ms, err := in.members(id, tt.Kind)
		if err != nil {
			sb.WriteString("{?}")
			return
		}
		sb.WriteString("{")
		for i, m := range ms {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.Name)
			sb.WriteString(": ")
			in.format(sb, m.Type)
		}
		sb.WriteString("}")
	case KindFunc:
		info := in.funcs[tt.Payload]
		sb.WriteString("fun")
		in.format(sb, info.Params)
		sb.WriteString(" -> ")
		in.format(sb, info.Result)
	default:
		sb.WriteString(tt.Kind.String())
	}
}
