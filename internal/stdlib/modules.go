package stdlib

// ModuleDefinition defines a group of built-in symbols (an extension)
type ModuleDefinition struct {
	Name      string                        // Extension name (e.g., "standard", "pcre")
	Functions map[string]FunctionDefinition // Built-in functions of this extension
	Constants []string                      // Built-in constants of this extension
	Classes   []ClassDefinition             // Built-in classes and interfaces
}

// FunctionDefinition defines a built-in function signature
type FunctionDefinition struct {
	Name       string                // Function name (e.g., "strlen", "preg_match")
	Parameters []ParameterDefinition // Function parameters
	Void       bool                  // Never returns a value
}

// ParameterDefinition defines a function parameter
type ParameterDefinition struct {
	Name     string
	Optional bool
	ByRef    bool
	Variadic bool
}

// ClassDefinition names a built-in class or interface. Members are not
// catalogued; hierarchies reaching a built-in are treated as opaque.
type ClassDefinition struct {
	Name      string
	Interface bool
}

// MinArity is the number of required parameters.
func (f FunctionDefinition) MinArity() int {
	n := 0
	for _, p := range f.Parameters {
		if p.Optional || p.Variadic {
			break
		}
		n++
	}
	return n
}

// MaxArity is the number of declared parameters, or -1 when variadic.
func (f FunctionDefinition) MaxArity() int {
	for _, p := range f.Parameters {
		if p.Variadic {
			return -1
		}
	}
	return len(f.Parameters)
}

// ByRefAt reports whether the argument at index i is passed by reference.
func (f FunctionDefinition) ByRefAt(i int) bool {
	if i < len(f.Parameters) {
		return f.Parameters[i].ByRef
	}
	if n := len(f.Parameters); n > 0 && f.Parameters[n-1].Variadic {
		return f.Parameters[n-1].ByRef
	}
	return false
}

// Helper functions for creating function definitions
func NewFunction(name string, params ...ParameterDefinition) FunctionDefinition {
	return FunctionDefinition{Name: name, Parameters: params}
}

func NewVoidFunction(name string, params ...ParameterDefinition) FunctionDefinition {
	return FunctionDefinition{Name: name, Parameters: params, Void: true}
}

// Helper functions for creating parameters
func NewParam(name string) ParameterDefinition {
	return ParameterDefinition{Name: name}
}

func OptionalParam(name string) ParameterDefinition {
	return ParameterDefinition{Name: name, Optional: true}
}

func RefParam(name string) ParameterDefinition {
	return ParameterDefinition{Name: name, ByRef: true}
}

func OptionalRefParam(name string) ParameterDefinition {
	return ParameterDefinition{Name: name, Optional: true, ByRef: true}
}

func VariadicParam(name string) ParameterDefinition {
	return ParameterDefinition{Name: name, Variadic: true}
}

func functions(defs ...FunctionDefinition) map[string]FunctionDefinition {
	m := make(map[string]FunctionDefinition, len(defs))
	for _, d := range defs {
		m[d.Name] = d
	}
	return m
}

func classes(names ...string) []ClassDefinition {
	out := make([]ClassDefinition, len(names))
	for i, n := range names {
		out[i] = ClassDefinition{Name: n}
	}
	return out
}

func interfaces(names ...string) []ClassDefinition {
	out := make([]ClassDefinition, len(names))
	for i, n := range names {
		out[i] = ClassDefinition{Name: n, Interface: true}
	}
	return out
}

// GetStandardModules returns all built-in extensions
func GetStandardModules() map[string]*ModuleDefinition {
	return map[string]*ModuleDefinition{
		"core": {
			Name: "core",
			Functions: functions(
				NewFunction("define", NewParam("constant_name"), NewParam("value"), OptionalParam("case_insensitive")),
				NewFunction("defined", NewParam("constant_name")),
				NewFunction("constant", NewParam("name")),
				NewFunction("function_exists", NewParam("function")),
				NewFunction("class_exists", NewParam("class"), OptionalParam("autoload")),
				NewFunction("interface_exists", NewParam("interface"), OptionalParam("autoload")),
				NewFunction("method_exists", NewParam("object_or_class"), NewParam("method")),
				NewFunction("property_exists", NewParam("object_or_class"), NewParam("property")),
				NewFunction("get_class", OptionalParam("object")),
				NewFunction("get_parent_class", OptionalParam("object_or_class")),
				NewFunction("get_object_vars", NewParam("object")),
				NewFunction("get_defined_vars"),
				NewFunction("func_get_args"),
				NewFunction("func_num_args"),
				NewFunction("func_get_arg", NewParam("position")),
				NewFunction("is_callable", NewParam("value"), OptionalParam("syntax_only"), OptionalRefParam("callable_name")),
				NewFunction("call_user_func", NewParam("callback"), VariadicParam("args")),
				NewFunction("call_user_func_array", NewParam("callback"), NewParam("args")),
				NewFunction("spl_autoload_register", OptionalParam("callback"), OptionalParam("throw"), OptionalParam("prepend")),
				NewFunction("trigger_error", NewParam("message"), OptionalParam("error_level")),
				NewFunction("error_reporting", OptionalParam("error_level")),
				NewFunction("set_error_handler", NewParam("callback"), OptionalParam("error_levels")),
				NewFunction("set_exception_handler", NewParam("callback")),
				NewVoidFunction("register_shutdown_function", NewParam("callback"), VariadicParam("args")),
				NewFunction("ini_set", NewParam("option"), NewParam("value")),
				NewFunction("ini_get", NewParam("option")),
				NewFunction("extension_loaded", NewParam("extension")),
				NewFunction("phpversion", OptionalParam("extension")),
				NewFunction("debug_backtrace", OptionalParam("options"), OptionalParam("limit")),
				NewVoidFunction("debug_print_backtrace", OptionalParam("options"), OptionalParam("limit")),
				NewFunction("extract", RefParam("array"), OptionalParam("flags"), OptionalParam("prefix")),
				NewFunction("compact", NewParam("var_name"), VariadicParam("var_names")),
			),
			Constants: []string{
				"PHP_EOL", "PHP_INT_MAX", "PHP_INT_MIN", "PHP_INT_SIZE", "PHP_FLOAT_EPSILON",
				"PHP_FLOAT_MAX", "PHP_FLOAT_MIN", "PHP_VERSION", "PHP_MAJOR_VERSION",
				"PHP_MINOR_VERSION", "PHP_OS", "PHP_OS_FAMILY", "PHP_SAPI",
				"DIRECTORY_SEPARATOR", "PATH_SEPARATOR",
				"E_ALL", "E_ERROR", "E_WARNING", "E_PARSE", "E_NOTICE", "E_STRICT",
				"E_DEPRECATED", "E_USER_ERROR", "E_USER_WARNING", "E_USER_NOTICE",
				"E_USER_DEPRECATED", "NAN", "INF", "STDIN", "STDOUT", "STDERR",
			},
			Classes: append(classes(
				"stdClass", "Closure", "Generator", "Exception", "Error", "ErrorException",
				"TypeError", "ValueError", "ArgumentCountError", "ArithmeticError",
				"DivisionByZeroError",
			), interfaces(
				"Throwable", "Traversable", "Iterator", "IteratorAggregate", "ArrayAccess",
				"Countable", "Stringable", "Serializable",
			)...),
		},
		"standard": {
			Name: "standard",
			Functions: functions(
				NewFunction("strlen", NewParam("string")),
				NewFunction("strtolower", NewParam("string")),
				NewFunction("strtoupper", NewParam("string")),
				NewFunction("ucfirst", NewParam("string")),
				NewFunction("lcfirst", NewParam("string")),
				NewFunction("ucwords", NewParam("string"), OptionalParam("separators")),
				NewFunction("trim", NewParam("string"), OptionalParam("characters")),
				NewFunction("ltrim", NewParam("string"), OptionalParam("characters")),
				NewFunction("rtrim", NewParam("string"), OptionalParam("characters")),
				NewFunction("str_repeat", NewParam("string"), NewParam("times")),
				NewFunction("str_pad", NewParam("string"), NewParam("length"), OptionalParam("pad_string"), OptionalParam("pad_type")),
				NewFunction("str_replace", NewParam("search"), NewParam("replace"), NewParam("subject"), OptionalRefParam("count")),
				NewFunction("str_ireplace", NewParam("search"), NewParam("replace"), NewParam("subject"), OptionalRefParam("count")),
				NewFunction("str_contains", NewParam("haystack"), NewParam("needle")),
				NewFunction("str_starts_with", NewParam("haystack"), NewParam("needle")),
				NewFunction("str_ends_with", NewParam("haystack"), NewParam("needle")),
				NewFunction("str_split", NewParam("string"), OptionalParam("length")),
				NewFunction("strpos", NewParam("haystack"), NewParam("needle"), OptionalParam("offset")),
				NewFunction("stripos", NewParam("haystack"), NewParam("needle"), OptionalParam("offset")),
				NewFunction("strrpos", NewParam("haystack"), NewParam("needle"), OptionalParam("offset")),
				NewFunction("strstr", NewParam("haystack"), NewParam("needle"), OptionalParam("before_needle")),
				NewFunction("strrev", NewParam("string")),
				NewFunction("strcmp", NewParam("string1"), NewParam("string2")),
				NewFunction("strcasecmp", NewParam("string1"), NewParam("string2")),
				NewFunction("strncmp", NewParam("string1"), NewParam("string2"), NewParam("length")),
				NewFunction("substr", NewParam("string"), NewParam("offset"), OptionalParam("length")),
				NewFunction("substr_count", NewParam("haystack"), NewParam("needle"), OptionalParam("offset"), OptionalParam("length")),
				NewFunction("sprintf", NewParam("format"), VariadicParam("values")),
				NewFunction("vsprintf", NewParam("format"), NewParam("values")),
				NewFunction("printf", NewParam("format"), VariadicParam("values")),
				NewFunction("number_format", NewParam("num"), OptionalParam("decimals"), OptionalParam("decimal_separator"), OptionalParam("thousands_separator")),
				NewFunction("implode", NewParam("separator"), OptionalParam("array")),
				NewFunction("join", NewParam("separator"), OptionalParam("array")),
				NewFunction("explode", NewParam("separator"), NewParam("string"), OptionalParam("limit")),
				NewFunction("nl2br", NewParam("string"), OptionalParam("use_xhtml")),
				NewFunction("htmlspecialchars", NewParam("string"), OptionalParam("flags"), OptionalParam("encoding"), OptionalParam("double_encode")),
				NewFunction("html_entity_decode", NewParam("string"), OptionalParam("flags"), OptionalParam("encoding")),
				NewFunction("strip_tags", NewParam("string"), OptionalParam("allowed_tags")),
				NewFunction("addslashes", NewParam("string")),
				NewFunction("stripslashes", NewParam("string")),
				NewFunction("md5", NewParam("string"), OptionalParam("binary")),
				NewFunction("sha1", NewParam("string"), OptionalParam("binary")),
				NewFunction("crc32", NewParam("string")),
				NewFunction("base64_encode", NewParam("string")),
				NewFunction("base64_decode", NewParam("string"), OptionalParam("strict")),
				NewFunction("urlencode", NewParam("string")),
				NewFunction("urldecode", NewParam("string")),
				NewFunction("rawurlencode", NewParam("string")),
				NewFunction("http_build_query", NewParam("data"), OptionalParam("numeric_prefix"), OptionalParam("arg_separator"), OptionalParam("encoding_type")),
				NewFunction("parse_url", NewParam("url"), OptionalParam("component")),
				NewVoidFunction("parse_str", NewParam("string"), RefParam("result")),
				NewFunction("chr", NewParam("codepoint")),
				NewFunction("ord", NewParam("character")),
				NewFunction("serialize", NewParam("value")),
				NewFunction("unserialize", NewParam("data"), OptionalParam("options")),
				NewFunction("var_export", NewParam("value"), OptionalParam("return")),
				NewVoidFunction("var_dump", NewParam("value"), VariadicParam("values")),
				NewFunction("print_r", NewParam("value"), OptionalParam("return")),
				NewFunction("gettype", NewParam("value")),
				NewFunction("settype", RefParam("var"), NewParam("type")),
				NewFunction("intval", NewParam("value"), OptionalParam("base")),
				NewFunction("floatval", NewParam("value")),
				NewFunction("strval", NewParam("value")),
				NewFunction("boolval", NewParam("value")),
				NewFunction("is_int", NewParam("value")),
				NewFunction("is_integer", NewParam("value")),
				NewFunction("is_float", NewParam("value")),
				NewFunction("is_string", NewParam("value")),
				NewFunction("is_bool", NewParam("value")),
				NewFunction("is_array", NewParam("value")),
				NewFunction("is_object", NewParam("value")),
				NewFunction("is_null", NewParam("value")),
				NewFunction("is_numeric", NewParam("value")),
				NewFunction("is_scalar", NewParam("value")),
				NewFunction("is_iterable", NewParam("value")),
				NewFunction("is_a", NewParam("object_or_class"), NewParam("class"), OptionalParam("allow_string")),
				NewFunction("is_subclass_of", NewParam("object_or_class"), NewParam("class"), OptionalParam("allow_string")),
				NewFunction("uniqid", OptionalParam("prefix"), OptionalParam("more_entropy")),
				NewFunction("sleep", NewParam("seconds")),
				NewVoidFunction("usleep", NewParam("microseconds")),
				NewFunction("microtime", OptionalParam("as_float")),
				NewFunction("hrtime", OptionalParam("as_number")),
				NewVoidFunction("header", NewParam("header"), OptionalParam("replace"), OptionalParam("response_code")),
				NewVoidFunction("header_remove", OptionalParam("name")),
				NewFunction("headers_sent", OptionalRefParam("filename"), OptionalRefParam("line")),
				NewFunction("http_response_code", OptionalParam("response_code")),
				NewFunction("setcookie", NewParam("name"), OptionalParam("value"), OptionalParam("expires_or_options"), OptionalParam("path"), OptionalParam("domain"), OptionalParam("secure"), OptionalParam("httponly")),
				NewFunction("session_start", OptionalParam("options")),
				NewFunction("session_destroy"),
				NewFunction("ob_start", OptionalParam("callback"), OptionalParam("chunk_size"), OptionalParam("flags")),
				NewFunction("ob_get_clean"),
				NewFunction("ob_end_clean"),
				NewVoidFunction("flush"),
				NewFunction("error_log", NewParam("message"), OptionalParam("message_type"), OptionalParam("destination"), OptionalParam("additional_headers")),
				NewFunction("exec", NewParam("command"), OptionalRefParam("output"), OptionalRefParam("result_code")),
				NewFunction("shell_exec", NewParam("command")),
				NewFunction("getenv", OptionalParam("name"), OptionalParam("local_only")),
				NewFunction("putenv", NewParam("assignment")),
				NewFunction("set_time_limit", NewParam("seconds")),
				NewFunction("version_compare", NewParam("version1"), NewParam("version2"), OptionalParam("operator")),
			),
			Constants: []string{
				"ENT_QUOTES", "ENT_COMPAT", "ENT_NOQUOTES", "ENT_HTML5", "ENT_HTML401",
				"STR_PAD_LEFT", "STR_PAD_RIGHT", "STR_PAD_BOTH",
				"PHP_URL_SCHEME", "PHP_URL_HOST", "PHP_URL_PATH", "PHP_URL_QUERY",
			},
		},
		"array": {
			Name: "array",
			Functions: functions(
				NewFunction("count", NewParam("value"), OptionalParam("mode")),
				NewFunction("sizeof", NewParam("value"), OptionalParam("mode")),
				NewFunction("in_array", NewParam("needle"), NewParam("haystack"), OptionalParam("strict")),
				NewFunction("array_search", NewParam("needle"), NewParam("haystack"), OptionalParam("strict")),
				NewFunction("array_keys", NewParam("array"), OptionalParam("filter_value"), OptionalParam("strict")),
				NewFunction("array_values", NewParam("array")),
				NewFunction("array_merge", VariadicParam("arrays")),
				NewFunction("array_merge_recursive", VariadicParam("arrays")),
				NewFunction("array_replace", NewParam("array"), VariadicParam("replacements")),
				NewFunction("array_combine", NewParam("keys"), NewParam("values")),
				NewFunction("array_flip", NewParam("array")),
				NewFunction("array_fill", NewParam("start_index"), NewParam("count"), NewParam("value")),
				NewFunction("array_fill_keys", NewParam("keys"), NewParam("value")),
				NewFunction("array_key_exists", NewParam("key"), NewParam("array")),
				NewFunction("key_exists", NewParam("key"), NewParam("array")),
				NewFunction("array_key_first", NewParam("array")),
				NewFunction("array_key_last", NewParam("array")),
				NewFunction("array_map", NewParam("callback"), NewParam("array"), VariadicParam("arrays")),
				NewFunction("array_filter", NewParam("array"), OptionalParam("callback"), OptionalParam("mode")),
				NewFunction("array_reduce", NewParam("array"), NewParam("callback"), OptionalParam("initial")),
				NewFunction("array_walk", RefParam("array"), NewParam("callback"), OptionalParam("arg")),
				NewFunction("array_slice", NewParam("array"), NewParam("offset"), OptionalParam("length"), OptionalParam("preserve_keys")),
				NewFunction("array_splice", RefParam("array"), NewParam("offset"), OptionalParam("length"), OptionalParam("replacement")),
				NewFunction("array_push", RefParam("array"), VariadicParam("values")),
				NewFunction("array_pop", RefParam("array")),
				NewFunction("array_shift", RefParam("array")),
				NewFunction("array_unshift", RefParam("array"), VariadicParam("values")),
				NewFunction("array_reverse", NewParam("array"), OptionalParam("preserve_keys")),
				NewFunction("array_unique", NewParam("array"), OptionalParam("flags")),
				NewFunction("array_diff", NewParam("array"), VariadicParam("arrays")),
				NewFunction("array_diff_key", NewParam("array"), VariadicParam("arrays")),
				NewFunction("array_intersect", NewParam("array"), VariadicParam("arrays")),
				NewFunction("array_intersect_key", NewParam("array"), VariadicParam("arrays")),
				NewFunction("array_column", NewParam("array"), NewParam("column_key"), OptionalParam("index_key")),
				NewFunction("array_chunk", NewParam("array"), NewParam("length"), OptionalParam("preserve_keys")),
				NewFunction("array_pad", NewParam("array"), NewParam("length"), NewParam("value")),
				NewFunction("array_sum", NewParam("array")),
				NewFunction("array_product", NewParam("array")),
				NewFunction("array_rand", NewParam("array"), OptionalParam("num")),
				NewFunction("array_is_list", NewParam("array")),
				NewFunction("range", NewParam("start"), NewParam("end"), OptionalParam("step")),
				NewFunction("sort", RefParam("array"), OptionalParam("flags")),
				NewFunction("rsort", RefParam("array"), OptionalParam("flags")),
				NewFunction("asort", RefParam("array"), OptionalParam("flags")),
				NewFunction("arsort", RefParam("array"), OptionalParam("flags")),
				NewFunction("ksort", RefParam("array"), OptionalParam("flags")),
				NewFunction("krsort", RefParam("array"), OptionalParam("flags")),
				NewFunction("usort", RefParam("array"), NewParam("callback")),
				NewFunction("uasort", RefParam("array"), NewParam("callback")),
				NewFunction("uksort", RefParam("array"), NewParam("callback")),
				NewFunction("shuffle", RefParam("array")),
				NewFunction("reset", RefParam("array")),
				NewFunction("end", RefParam("array")),
				NewFunction("next", RefParam("array")),
				NewFunction("prev", RefParam("array")),
				NewFunction("current", NewParam("array")),
				NewFunction("key", NewParam("array")),
			),
			Constants: []string{
				"COUNT_NORMAL", "COUNT_RECURSIVE", "SORT_REGULAR", "SORT_NUMERIC",
				"SORT_STRING", "SORT_NATURAL", "SORT_FLAG_CASE",
				"ARRAY_FILTER_USE_KEY", "ARRAY_FILTER_USE_BOTH", "EXTR_OVERWRITE", "EXTR_SKIP",
			},
		},
		"math": {
			Name: "math",
			Functions: functions(
				NewFunction("abs", NewParam("num")),
				NewFunction("ceil", NewParam("num")),
				NewFunction("floor", NewParam("num")),
				NewFunction("round", NewParam("num"), OptionalParam("precision"), OptionalParam("mode")),
				NewFunction("sqrt", NewParam("num")),
				NewFunction("pow", NewParam("num"), NewParam("exponent")),
				NewFunction("intdiv", NewParam("num1"), NewParam("num2")),
				NewFunction("fmod", NewParam("num1"), NewParam("num2")),
				NewFunction("max", NewParam("value"), VariadicParam("values")),
				NewFunction("min", NewParam("value"), VariadicParam("values")),
				NewFunction("rand", OptionalParam("min"), OptionalParam("max")),
				NewFunction("mt_rand", OptionalParam("min"), OptionalParam("max")),
				NewFunction("random_int", NewParam("min"), NewParam("max")),
				NewFunction("random_bytes", NewParam("length")),
				NewVoidFunction("mt_srand", OptionalParam("seed"), OptionalParam("mode")),
				NewVoidFunction("srand", OptionalParam("seed"), OptionalParam("mode")),
				NewFunction("is_nan", NewParam("num")),
				NewFunction("is_finite", NewParam("num")),
				NewFunction("dechex", NewParam("num")),
				NewFunction("hexdec", NewParam("hex_string")),
				NewFunction("bin2hex", NewParam("string")),
				NewFunction("base_convert", NewParam("num"), NewParam("from_base"), NewParam("to_base")),
			),
			Constants: []string{"M_PI", "M_E", "M_SQRT2", "PHP_ROUND_HALF_UP", "PHP_ROUND_HALF_DOWN", "PHP_ROUND_HALF_EVEN"},
		},
		"json": {
			Name: "json",
			Functions: functions(
				NewFunction("json_encode", NewParam("value"), OptionalParam("flags"), OptionalParam("depth")),
				NewFunction("json_decode", NewParam("json"), OptionalParam("associative"), OptionalParam("depth"), OptionalParam("flags")),
				NewFunction("json_last_error"),
				NewFunction("json_last_error_msg"),
			),
			Constants: []string{
				"JSON_PRETTY_PRINT", "JSON_UNESCAPED_SLASHES", "JSON_UNESCAPED_UNICODE",
				"JSON_THROW_ON_ERROR", "JSON_ERROR_NONE", "JSON_HEX_TAG", "JSON_NUMERIC_CHECK",
			},
			Classes: append(classes("JsonException"), interfaces("JsonSerializable")...),
		},
		"pcre": {
			Name: "pcre",
			Functions: functions(
				NewFunction("preg_match", NewParam("pattern"), NewParam("subject"), OptionalRefParam("matches"), OptionalParam("flags"), OptionalParam("offset")),
				NewFunction("preg_match_all", NewParam("pattern"), NewParam("subject"), OptionalRefParam("matches"), OptionalParam("flags"), OptionalParam("offset")),
				NewFunction("preg_replace", NewParam("pattern"), NewParam("replacement"), NewParam("subject"), OptionalParam("limit"), OptionalRefParam("count")),
				NewFunction("preg_replace_callback", NewParam("pattern"), NewParam("callback"), NewParam("subject"), OptionalParam("limit"), OptionalRefParam("count"), OptionalParam("flags")),
				NewFunction("preg_split", NewParam("pattern"), NewParam("subject"), OptionalParam("limit"), OptionalParam("flags")),
				NewFunction("preg_quote", NewParam("str"), OptionalParam("delimiter")),
				NewFunction("preg_grep", NewParam("pattern"), NewParam("array"), OptionalParam("flags")),
			),
			Constants: []string{"PREG_PATTERN_ORDER", "PREG_SET_ORDER", "PREG_SPLIT_NO_EMPTY", "PREG_SPLIT_DELIM_CAPTURE", "PREG_OFFSET_CAPTURE"},
		},
		"date": {
			Name: "date",
			Functions: functions(
				NewFunction("time"),
				NewFunction("date", NewParam("format"), OptionalParam("timestamp")),
				NewFunction("gmdate", NewParam("format"), OptionalParam("timestamp")),
				NewFunction("mktime", NewParam("hour"), OptionalParam("minute"), OptionalParam("second"), OptionalParam("month"), OptionalParam("day"), OptionalParam("year")),
				NewFunction("strtotime", NewParam("datetime"), OptionalParam("baseTimestamp")),
				NewFunction("checkdate", NewParam("month"), NewParam("day"), NewParam("year")),
				NewFunction("date_default_timezone_set", NewParam("timezoneId")),
				NewFunction("date_default_timezone_get"),
			),
			Classes: append(classes("DateTime", "DateTimeImmutable", "DateTimeZone", "DateInterval"), interfaces("DateTimeInterface")...),
		},
		"filesystem": {
			Name: "filesystem",
			Functions: functions(
				NewFunction("file_exists", NewParam("filename")),
				NewFunction("is_file", NewParam("filename")),
				NewFunction("is_dir", NewParam("filename")),
				NewFunction("is_readable", NewParam("filename")),
				NewFunction("is_writable", NewParam("filename")),
				NewFunction("file_get_contents", NewParam("filename"), OptionalParam("use_include_path"), OptionalParam("context"), OptionalParam("offset"), OptionalParam("length")),
				NewFunction("file_put_contents", NewParam("filename"), NewParam("data"), OptionalParam("flags"), OptionalParam("context")),
				NewFunction("file", NewParam("filename"), OptionalParam("flags"), OptionalParam("context")),
				NewFunction("fopen", NewParam("filename"), NewParam("mode"), OptionalParam("use_include_path"), OptionalParam("context")),
				NewFunction("fclose", NewParam("stream")),
				NewFunction("fread", NewParam("stream"), NewParam("length")),
				NewFunction("fwrite", NewParam("stream"), NewParam("data"), OptionalParam("length")),
				NewFunction("fputs", NewParam("stream"), NewParam("data"), OptionalParam("length")),
				NewFunction("fgets", NewParam("stream"), OptionalParam("length")),
				NewFunction("feof", NewParam("stream")),
				NewFunction("flock", NewParam("stream"), NewParam("operation"), OptionalRefParam("would_block")),
				NewFunction("unlink", NewParam("filename"), OptionalParam("context")),
				NewFunction("mkdir", NewParam("directory"), OptionalParam("permissions"), OptionalParam("recursive"), OptionalParam("context")),
				NewFunction("rmdir", NewParam("directory"), OptionalParam("context")),
				NewFunction("rename", NewParam("from"), NewParam("to"), OptionalParam("context")),
				NewFunction("copy", NewParam("from"), NewParam("to"), OptionalParam("context")),
				NewFunction("basename", NewParam("path"), OptionalParam("suffix")),
				NewFunction("dirname", NewParam("path"), OptionalParam("levels")),
				NewFunction("pathinfo", NewParam("path"), OptionalParam("flags")),
				NewFunction("realpath", NewParam("path")),
				NewFunction("glob", NewParam("pattern"), OptionalParam("flags")),
				NewFunction("scandir", NewParam("directory"), OptionalParam("sorting_order"), OptionalParam("context")),
				NewFunction("tempnam", NewParam("directory"), NewParam("prefix")),
				NewFunction("sys_get_temp_dir"),
				NewFunction("filemtime", NewParam("filename")),
				NewFunction("filesize", NewParam("filename")),
				NewVoidFunction("clearstatcache", OptionalParam("clear_realpath_cache"), OptionalParam("filename")),
			),
			Constants: []string{"FILE_APPEND", "FILE_IGNORE_NEW_LINES", "FILE_SKIP_EMPTY_LINES", "LOCK_SH", "LOCK_EX", "LOCK_UN", "SEEK_SET", "SEEK_CUR", "SEEK_END", "PATHINFO_EXTENSION", "PATHINFO_FILENAME"},
		},
		"spl": {
			Name: "spl",
			Functions: functions(
				NewFunction("spl_object_id", NewParam("object")),
				NewFunction("spl_object_hash", NewParam("object")),
				NewFunction("iterator_to_array", NewParam("iterator"), OptionalParam("preserve_keys")),
				NewFunction("class_implements", NewParam("object_or_class"), OptionalParam("autoload")),
			),
			Classes: append(classes(
				"ArrayObject", "ArrayIterator", "SplStack", "SplQueue", "SplObjectStorage",
				"SplFixedArray", "LogicException", "BadFunctionCallException",
				"BadMethodCallException", "DomainException", "InvalidArgumentException",
				"LengthException", "OutOfRangeException", "RuntimeException",
				"OutOfBoundsException", "OverflowException", "RangeException",
				"UnderflowException", "UnexpectedValueException",
			), interfaces("SeekableIterator", "OuterIterator", "RecursiveIterator")...),
		},
	}
}
