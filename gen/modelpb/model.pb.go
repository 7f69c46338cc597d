// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.5
// 	protoc        (unknown)
// source: model.proto

package modelpb

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type JvpRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Point         []float64              `protobuf:"fixed64,1,rep,packed,name=point,proto3" json:"point,omitempty"`   // linearization point x0
	Vector        []float64              `protobuf:"fixed64,2,rep,packed,name=vector,proto3" json:"vector,omitempty"` // tangent vector v
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *JvpRequest) Reset() {
	*x = JvpRequest{}
	mi := &file_model_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *JvpRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*JvpRequest) ProtoMessage() {}

func (x *JvpRequest) ProtoReflect() protoreflect.Message {
	mi := &file_model_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use JvpRequest.ProtoReflect.Descriptor instead.
func (*JvpRequest) Descriptor() ([]byte, []int) {
	return file_model_proto_rawDescGZIP(), []int{0}
}

func (x *JvpRequest) GetPoint() []float64 {
	if x != nil {
		return x.Point
	}
	return nil
}

func (x *JvpRequest) GetVector() []float64 {
	if x != nil {
		return x.Vector
	}
	return nil
}

type JvpResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Product       []float64              `protobuf:"fixed64,1,rep,packed,name=product,proto3" json:"product,omitempty"` // J(x0) · v
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *JvpResponse) Reset() {
	*x = JvpResponse{}
	mi := &file_model_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *JvpResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*JvpResponse) ProtoMessage() {}

func (x *JvpResponse) ProtoReflect() protoreflect.Message {
	mi := &file_model_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use JvpResponse.ProtoReflect.Descriptor instead.
func (*JvpResponse) Descriptor() ([]byte, []int) {
	return file_model_proto_rawDescGZIP(), []int{1}
}

func (x *JvpResponse) GetProduct() []float64 {
	if x != nil {
		return x.Product
	}
	return nil
}

type VjpRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Point         []float64              `protobuf:"fixed64,1,rep,packed,name=point,proto3" json:"point,omitempty"`   // linearization point x0
	Vector        []float64              `protobuf:"fixed64,2,rep,packed,name=vector,proto3" json:"vector,omitempty"` // cotangent vector u
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *VjpRequest) Reset() {
	*x = VjpRequest{}
	mi := &file_model_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *VjpRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*VjpRequest) ProtoMessage() {}

func (x *VjpRequest) ProtoReflect() protoreflect.Message {
	mi := &file_model_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use VjpRequest.ProtoReflect.Descriptor instead.
func (*VjpRequest) Descriptor() ([]byte, []int) {
	return file_model_proto_rawDescGZIP(), []int{2}
}

func (x *VjpRequest) GetPoint() []float64 {
	if x != nil {
		return x.Point
	}
	return nil
}

func (x *VjpRequest) GetVector() []float64 {
	if x != nil {
		return x.Vector
	}
	return nil
}

type VjpResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Product       []float64              `protobuf:"fixed64,1,rep,packed,name=product,proto3" json:"product,omitempty"` // J(x0)ᵀ · u
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *VjpResponse) Reset() {
	*x = VjpResponse{}
	mi := &file_model_proto_msgTypes[3]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *VjpResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*VjpResponse) ProtoMessage() {}

func (x *VjpResponse) ProtoReflect() protoreflect.Message {
	mi := &file_model_proto_msgTypes[3]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use VjpResponse.ProtoReflect.Descriptor instead.
func (*VjpResponse) Descriptor() ([]byte, []int) {
	return file_model_proto_rawDescGZIP(), []int{3}
}

func (x *VjpResponse) GetProduct() []float64 {
	if x != nil {
		return x.Product
	}
	return nil
}

type MacsRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *MacsRequest) Reset() {
	*x = MacsRequest{}
	mi := &file_model_proto_msgTypes[4]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *MacsRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*MacsRequest) ProtoMessage() {}

func (x *MacsRequest) ProtoReflect() protoreflect.Message {
	mi := &file_model_proto_msgTypes[4]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use MacsRequest.ProtoReflect.Descriptor instead.
func (*MacsRequest) Descriptor() ([]byte, []int) {
	return file_model_proto_rawDescGZIP(), []int{4}
}

type MacsResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Macs          int64                  `protobuf:"varint,1,opt,name=macs,proto3" json:"macs,omitempty"` // multiply-accumulate ops in the last forward pass
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *MacsResponse) Reset() {
	*x = MacsResponse{}
	mi := &file_model_proto_msgTypes[5]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *MacsResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*MacsResponse) ProtoMessage() {}

func (x *MacsResponse) ProtoReflect() protoreflect.Message {
	mi := &file_model_proto_msgTypes[5]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use MacsResponse.ProtoReflect.Descriptor instead.
func (*MacsResponse) Descriptor() ([]byte, []int) {
	return file_model_proto_rawDescGZIP(), []int{5}
}

func (x *MacsResponse) GetMacs() int64 {
	if x != nil {
		return x.Macs
	}
	return 0
}

var File_model_proto protoreflect.FileDescriptor

var file_model_proto_rawDesc = string([]byte{
	0x0a, 0x0b, 0x6d, 0x6f, 0x64, 0x65, 0x6c, 0x2e, 0x70, 0x72, 0x6f, 0x74, 0x6f, 0x12, 0x08, 0x6d,
	0x6f, 0x64, 0x65, 0x6c, 0x73, 0x76, 0x63, 0x22, 0x3a, 0x0a, 0x0a, 0x4a, 0x76, 0x70, 0x52, 0x65,
	0x71, 0x75, 0x65, 0x73, 0x74, 0x12, 0x14, 0x0a, 0x05, 0x70, 0x6f, 0x69, 0x6e, 0x74, 0x18, 0x01,
	0x20, 0x03, 0x28, 0x01, 0x52, 0x05, 0x70, 0x6f, 0x69, 0x6e, 0x74, 0x12, 0x16, 0x0a, 0x06, 0x76,
	0x65, 0x63, 0x74, 0x6f, 0x72, 0x18, 0x02, 0x20, 0x03, 0x28, 0x01, 0x52, 0x06, 0x76, 0x65, 0x63,
	0x74, 0x6f, 0x72, 0x22, 0x27, 0x0a, 0x0b, 0x4a, 0x76, 0x70, 0x52, 0x65, 0x73, 0x70, 0x6f, 0x6e,
	0x73, 0x65, 0x12, 0x18, 0x0a, 0x07, 0x70, 0x72, 0x6f, 0x64, 0x75, 0x63, 0x74, 0x18, 0x01, 0x20,
	0x03, 0x28, 0x01, 0x52, 0x07, 0x70, 0x72, 0x6f, 0x64, 0x75, 0x63, 0x74, 0x22, 0x3a, 0x0a, 0x0a,
	0x56, 0x6a, 0x70, 0x52, 0x65, 0x71, 0x75, 0x65, 0x73, 0x74, 0x12, 0x14, 0x0a, 0x05, 0x70, 0x6f,
	0x69, 0x6e, 0x74, 0x18, 0x01, 0x20, 0x03, 0x28, 0x01, 0x52, 0x05, 0x70, 0x6f, 0x69, 0x6e, 0x74,
	0x12, 0x16, 0x0a, 0x06, 0x76, 0x65, 0x63, 0x74, 0x6f, 0x72, 0x18, 0x02, 0x20, 0x03, 0x28, 0x01,
	0x52, 0x06, 0x76, 0x65, 0x63, 0x74, 0x6f, 0x72, 0x22, 0x27, 0x0a, 0x0b, 0x56, 0x6a, 0x70, 0x52,
	0x65, 0x73, 0x70, 0x6f, 0x6e, 0x73, 0x65, 0x12, 0x18, 0x0a, 0x07, 0x70, 0x72, 0x6f, 0x64, 0x75,
	0x63, 0x74, 0x18, 0x01, 0x20, 0x03, 0x28, 0x01, 0x52, 0x07, 0x70, 0x72, 0x6f, 0x64, 0x75, 0x63,
	0x74, 0x22, 0x0d, 0x0a, 0x0b, 0x4d, 0x61, 0x63, 0x73, 0x52, 0x65, 0x71, 0x75, 0x65, 0x73, 0x74,
	0x22, 0x22, 0x0a, 0x0c, 0x4d, 0x61, 0x63, 0x73, 0x52, 0x65, 0x73, 0x70, 0x6f, 0x6e, 0x73, 0x65,
	0x12, 0x12, 0x0a, 0x04, 0x6d, 0x61, 0x63, 0x73, 0x18, 0x01, 0x20, 0x01, 0x28, 0x03, 0x52, 0x04,
	0x6d, 0x61, 0x63, 0x73, 0x32, 0xb5, 0x01, 0x0a, 0x0c, 0x4d, 0x6f, 0x64, 0x65, 0x6c, 0x53, 0x65,
	0x72, 0x76, 0x69, 0x63, 0x65, 0x12, 0x32, 0x0a, 0x03, 0x4a, 0x76, 0x70, 0x12, 0x14, 0x2e, 0x6d,
	0x6f, 0x64, 0x65, 0x6c, 0x73, 0x76, 0x63, 0x2e, 0x4a, 0x76, 0x70, 0x52, 0x65, 0x71, 0x75, 0x65,
	0x73, 0x74, 0x1a, 0x15, 0x2e, 0x6d, 0x6f, 0x64, 0x65, 0x6c, 0x73, 0x76, 0x63, 0x2e, 0x4a, 0x76,
	0x70, 0x52, 0x65, 0x73, 0x70, 0x6f, 0x6e, 0x73, 0x65, 0x12, 0x32, 0x0a, 0x03, 0x56, 0x6a, 0x70,
	0x12, 0x14, 0x2e, 0x6d, 0x6f, 0x64, 0x65, 0x6c, 0x73, 0x76, 0x63, 0x2e, 0x56, 0x6a, 0x70, 0x52,
	0x65, 0x71, 0x75, 0x65, 0x73, 0x74, 0x1a, 0x15, 0x2e, 0x6d, 0x6f, 0x64, 0x65, 0x6c, 0x73, 0x76,
	0x63, 0x2e, 0x56, 0x6a, 0x70, 0x52, 0x65, 0x73, 0x70, 0x6f, 0x6e, 0x73, 0x65, 0x12, 0x3d, 0x0a,
	0x0c, 0x4d, 0x61, 0x63, 0x73, 0x45, 0x73, 0x74, 0x69, 0x6d, 0x61, 0x74, 0x65, 0x12, 0x15, 0x2e,
	0x6d, 0x6f, 0x64, 0x65, 0x6c, 0x73, 0x76, 0x63, 0x2e, 0x4d, 0x61, 0x63, 0x73, 0x52, 0x65, 0x71,
	0x75, 0x65, 0x73, 0x74, 0x1a, 0x16, 0x2e, 0x6d, 0x6f, 0x64, 0x65, 0x6c, 0x73, 0x76, 0x63, 0x2e,
	0x4d, 0x61, 0x63, 0x73, 0x52, 0x65, 0x73, 0x70, 0x6f, 0x6e, 0x73, 0x65, 0x42, 0x2b, 0x5a, 0x29,
	0x67, 0x69, 0x74, 0x68, 0x75, 0x62, 0x2e, 0x63, 0x6f, 0x6d, 0x2f, 0x72, 0x61, 0x66, 0x74, 0x61,
	0x67, 0x65, 0x6e, 0x74, 0x2f, 0x67, 0x6f, 0x76, 0x65, 0x72, 0x6e, 0x6f, 0x72, 0x2f, 0x67, 0x65,
	0x6e, 0x2f, 0x6d, 0x6f, 0x64, 0x65, 0x6c, 0x70, 0x62, 0x62, 0x06, 0x70, 0x72, 0x6f, 0x74, 0x6f,
	0x33,
})

var (
	file_model_proto_rawDescOnce sync.Once
	file_model_proto_rawDescData []byte
)

func file_model_proto_rawDescGZIP() []byte {
	file_model_proto_rawDescOnce.Do(func() {
		file_model_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_model_proto_rawDesc), len(file_model_proto_rawDesc)))
	})
	return file_model_proto_rawDescData
}

var file_model_proto_msgTypes = make([]protoimpl.MessageInfo, 6)
var file_model_proto_goTypes = []any{
	(*JvpRequest)(nil),   // 0: modelsvc.JvpRequest
	(*JvpResponse)(nil),  // 1: modelsvc.JvpResponse
	(*VjpRequest)(nil),   // 2: modelsvc.VjpRequest
	(*VjpResponse)(nil),  // 3: modelsvc.VjpResponse
	(*MacsRequest)(nil),  // 4: modelsvc.MacsRequest
	(*MacsResponse)(nil), // 5: modelsvc.MacsResponse
}
var file_model_proto_depIdxs = []int32{
	0, // 0: modelsvc.ModelService.Jvp:input_type -> modelsvc.JvpRequest
	2, // 1: modelsvc.ModelService.Vjp:input_type -> modelsvc.VjpRequest
	4, // 2: modelsvc.ModelService.MacsEstimate:input_type -> modelsvc.MacsRequest
	1, // 3: modelsvc.ModelService.Jvp:output_type -> modelsvc.JvpResponse
	3, // 4: modelsvc.ModelService.Vjp:output_type -> modelsvc.VjpResponse
	5, // 5: modelsvc.ModelService.MacsEstimate:output_type -> modelsvc.MacsResponse
	3, // [3:6] is the sub-list for method output_type
	0, // [0:3] is the sub-list for method input_type
	0, // [0:0] is the sub-list for extension type_name
	0, // [0:0] is the sub-list for extension extendee
	0, // [0:0] is the sub-list for field type_name
}

func init() { file_model_proto_init() }
func file_model_proto_init() {
	if File_model_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_model_proto_rawDesc), len(file_model_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   6,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_model_proto_goTypes,
		DependencyIndexes: file_model_proto_depIdxs,
		MessageInfos:      file_model_proto_msgTypes,
	}.Build()
	File_model_proto = out.File
	file_model_proto_goTypes = nil
	file_model_proto_depIdxs = nil
}
